// Package packs loads locale packs for faker from memory or from JSON/YAML
// documents on an fs.FS.
//
// Every document goes through the same decode pipeline:
//
//	bytes -> map[string]any -> pre-hooks -> faker.PackFromMap -> post-hooks -> faker.Pack
//
// Pre-hooks normalise keys (snake_case, string map keys); post-hooks check
// that the decoded pack carries the code it was requested under. Stores are
// read-only from the resolver's point of view: packs are loaded once and
// handed to faker.New.
package packs
