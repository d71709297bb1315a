package faker

import "github.com/goliatone/go-faker/pkg/activity"

// WithActivityHooks attaches hooks notified on locale switches and reseeds.
// Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
		cfg.activityConfig.Enabled = len(normalized) > 0
	}
}

// WithActivityChannel overrides the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		cfg.activityConfig.Channel = channel
	}
}

// WithActivityActor stamps actorID and tenantID on events that do not carry
// their own.
func WithActivityActor(actorID, tenantID string) Option {
	return func(cfg *config) {
		cfg.activityConfig.ActorID = actorID
		cfg.activityConfig.TenantID = tenantID
	}
}

// ActivityHooks returns a cloned slice of the configured hooks.
func (f *Faker) ActivityHooks() activity.Hooks {
	if f == nil {
		return nil
	}
	return cloneActivityHooks(f.cfg.activityHooks)
}

func (cfg config) emitter() *activity.Emitter {
	return activity.NewEmitter(cfg.activityHooks, cfg.activityConfig)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
