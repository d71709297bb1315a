package activity

import "strings"

const (
	// VerbLocaleSet is emitted when the active locale changes.
	VerbLocaleSet = "locale.set"
	// VerbEngineReseed is emitted when the random engine is reseeded.
	VerbEngineReseed = "engine.reseed"

	// ObjectLocale is the object type of locale events; ObjectID is the code.
	ObjectLocale = "locale"
	// ObjectEngine is the object type of reseed events; ObjectID is the seed.
	ObjectEngine = "engine"
)

// LocaleChange describes a locale switch.
type LocaleChange struct {
	ActorID  string
	TenantID string
	Previous string
	Current  string
	Fallback string
}

// LocaleSetEvent builds the event for a locale switch.
func LocaleSetEvent(change LocaleChange) Event {
	metadata := map[string]any{"fallback": change.Fallback}
	if change.Previous != "" {
		metadata["previous"] = change.Previous
	}
	return Event{
		Verb:       VerbLocaleSet,
		ActorID:    strings.TrimSpace(change.ActorID),
		TenantID:   strings.TrimSpace(change.TenantID),
		ObjectType: ObjectLocale,
		ObjectID:   strings.TrimSpace(change.Current),
		Metadata:   metadata,
	}
}

// Reseed describes an engine reseed. Seed is the textual seed, Kind its
// variant ("scalar" or "vector").
type Reseed struct {
	ActorID  string
	TenantID string
	Seed     string
	Kind     string
	Previous string
}

// EngineReseedEvent builds the event for a reseed.
func EngineReseedEvent(reseed Reseed) Event {
	metadata := map[string]any{}
	if reseed.Kind != "" {
		metadata["kind"] = reseed.Kind
	}
	if reseed.Previous != "" {
		metadata["previous"] = reseed.Previous
	}
	objectID := strings.TrimSpace(reseed.Seed)
	if objectID == "" {
		objectID = ObjectEngine
	}
	return Event{
		Verb:       VerbEngineReseed,
		ActorID:    strings.TrimSpace(reseed.ActorID),
		TenantID:   strings.TrimSpace(reseed.TenantID),
		ObjectType: ObjectEngine,
		ObjectID:   objectID,
		Metadata:   metadata,
	}
}
