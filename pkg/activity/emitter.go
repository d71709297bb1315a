package activity

import (
	"context"
	"strings"
	"sync/atomic"
)

// DefaultChannel is stamped on events that carry no channel.
const DefaultChannel = "faker"

// Config holds the defaults an Emitter stamps on outgoing events. ActorID and
// TenantID identify whoever drives the faker, e.g. a fixture loader.
type Config struct {
	Enabled  bool
	Channel  string
	ActorID  string
	TenantID string
}

// Emitter stamps defaults on events and forwards them to its hooks.
type Emitter struct {
	hooks    Hooks
	defaults Config
	failures atomic.Int64
}

// NewEmitter returns an emitter over the non-nil entries of hooks. It stays
// disabled unless cfg.Enabled is set and at least one hook remains.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	defaults := Config{
		Channel:  strings.TrimSpace(cfg.Channel),
		ActorID:  strings.TrimSpace(cfg.ActorID),
		TenantID: strings.TrimSpace(cfg.TenantID),
	}
	if defaults.Channel == "" {
		defaults.Channel = DefaultChannel
	}
	var kept Hooks
	for _, hook := range hooks {
		if hook != nil {
			kept = append(kept, hook)
		}
	}
	defaults.Enabled = cfg.Enabled && len(kept) > 0
	return &Emitter{hooks: kept, defaults: defaults}
}

// Enabled reports whether Emit reaches any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.defaults.Enabled
}

// Emit fills in channel, actor and tenant where event leaves them blank and
// notifies every hook. A nil or disabled emitter does nothing.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.defaults.Channel
	}
	if strings.TrimSpace(event.ActorID) == "" {
		event.ActorID = e.defaults.ActorID
	}
	if strings.TrimSpace(event.TenantID) == "" {
		event.TenantID = e.defaults.TenantID
	}
	err := e.hooks.Notify(ctx, event)
	if err != nil {
		e.failures.Add(1)
	}
	return err
}

// Failures counts emissions where at least one hook returned an error.
func (e *Emitter) Failures() int64 {
	if e == nil {
		return 0
	}
	return e.failures.Load()
}
