package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-faker/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts faker activity events to a go-users ActivitySink. Actor and
// Tenant are used when the event does not name its own.
type Hook struct {
	Sink   usertypes.ActivitySink
	Actor  uuid.UUID
	Tenant uuid.UUID
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(normalized.ActorID, h.Actor),
		TenantID:   parseUUID(normalized.TenantID, h.Tenant),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       activity.CloneMetadata(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}
	if record.ObjectType == activity.ObjectLocale {
		if record.Data == nil {
			record.Data = map[string]any{}
		}
		record.Data["locale"] = normalized.ObjectID
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(input string, fallback uuid.UUID) uuid.UUID {
	value := strings.TrimSpace(input)
	if value == "" {
		return fallback
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return fallback
	}
	return id
}
