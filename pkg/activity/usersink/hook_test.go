package usersink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-faker/pkg/activity"
	"github.com/goliatone/go-faker/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsLocaleEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	tenantID := uuid.New()

	event := activity.LocaleSetEvent(activity.LocaleChange{
		ActorID:  actorID.String(),
		TenantID: tenantID.String(),
		Previous: "en",
		Current:  "de",
		Fallback: "en",
	})
	event.Channel = "fixtures"
	event.OccurredAt = now

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != activity.VerbLocaleSet || record.ObjectType != activity.ObjectLocale || record.ObjectID != "de" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "fixtures" {
		t.Fatalf("expected channel fixtures got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["previous"] != "en" || record.Data["locale"] != "de" {
		t.Fatalf("unexpected record data: %+v", record.Data)
	}
}

func TestHookNotifyUsesDefaultActor(t *testing.T) {
	sink := &recordingSink{}
	actor := uuid.New()
	hook := usersink.Hook{Sink: sink, Actor: actor}

	event := activity.EngineReseedEvent(activity.Reseed{Seed: "42", Kind: "scalar", ActorID: "not-a-uuid"})
	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	record := sink.records[0]
	if record.ActorID != actor {
		t.Fatalf("expected default actor %s got %s", actor, record.ActorID)
	}
	if record.TenantID != uuid.Nil {
		t.Fatalf("expected nil tenant, got %s", record.TenantID)
	}
	if _, ok := record.Data["locale"]; ok {
		t.Fatalf("reseed records should not carry a locale: %+v", record.Data)
	}
}

func TestHookNotifySkipsIncompleteEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyReturnsSinkError(t *testing.T) {
	boom := errors.New("sink down")
	sink := &recordingSink{err: boom}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.LocaleSetEvent(activity.LocaleChange{Current: "de"}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestNilSinkIsNoop(t *testing.T) {
	hook := usersink.Hook{}
	if err := hook.Notify(context.Background(), activity.LocaleSetEvent(activity.LocaleChange{Current: "de"})); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
