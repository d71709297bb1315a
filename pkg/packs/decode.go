package packs

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	faker "github.com/goliatone/go-faker"
	"github.com/goliatone/go-faker/internal/hydrate"
	"gopkg.in/yaml.v3"
)

// Format names a supported document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the format from a file name.
func FormatFor(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Parse decodes data in format into a pack for code. source labels errors.
func Parse(code, source string, format Format, data []byte) (faker.Pack, error) {
	var payload map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &payload); err != nil {
			return faker.Pack{}, fmt.Errorf("packs: parse %s: %w", source, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return faker.Pack{}, fmt.Errorf("packs: parse %s: %w", source, err)
		}
	default:
		return faker.Pack{}, fmt.Errorf("packs: %s: unsupported format %q", source, format)
	}
	if payload == nil {
		return faker.Pack{}, fmt.Errorf("packs: %s: document is empty", source)
	}
	return Decode(code, source, payload)
}

// Decode converts a generic document into a pack for code.
func Decode(code, source string, payload map[string]any) (faker.Pack, error) {
	if err := ValidateCode(code); err != nil {
		return faker.Pack{}, err
	}
	return packDecoder.Decode(hydrate.Context{Code: code, Source: source}, payload)
}

var packDecoder = hydrate.NewDecoder[faker.Pack](
	hydrate.WithPreHook[faker.Pack](normalizeKeys),
	hydrate.WithCustomDecoder[faker.Pack](func(ctx hydrate.Context, payload map[string]any) (faker.Pack, error) {
		return faker.PackFromMap(ctx.Code, payload)
	}),
	hydrate.WithPostHook[faker.Pack](checkCode),
)

// normalizeKeys rewrites category keys and the property keys below them to
// snake_case, so "phoneNumber" and "phone-number" both address phone_number.
// Property payloads are data and keep their keys.
func normalizeKeys(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		properties, ok := stringMap(value)
		if !ok {
			out[snakeCase(key)] = stringKeys(value)
			continue
		}
		category := make(map[string]any, len(properties))
		for property, item := range properties {
			category[snakeCase(property)] = stringKeys(item)
		}
		out[snakeCase(key)] = category
	}
	return out, nil
}

func stringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// stringKeys converts nested map[any]any mappings to map[string]any without
// renaming anything.
func stringKeys(value any) any {
	switch typed := value.(type) {
	case map[string]any, map[any]any:
		m, _ := stringMap(typed)
		out := make(map[string]any, len(m))
		for key, item := range m {
			out[key] = stringKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = stringKeys(item)
		}
		return out
	default:
		return value
	}
}

func snakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && key[i-1] != '_' && key[i-1] != '-' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkCode enforces that a document declaring its own code matches the code
// it was loaded under. The declaration is consumed.
func checkCode(ctx hydrate.Context, pack *faker.Pack) error {
	declared, ok := pack.Extra["code"]
	if !ok {
		return nil
	}
	delete(pack.Extra, "code")
	if len(pack.Extra) == 0 {
		pack.Extra = nil
	}
	if code, _ := declared.(string); code != ctx.Code {
		return fmt.Errorf("document declares code %v, loaded as %q", declared, ctx.Code)
	}
	return nil
}
