package faker

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-faker/internal/clone"
)

// Category names a group of related definitions inside a locale pack.
type Category string

const (
	CategoryAddress     Category = "address"
	CategoryAnimal      Category = "animal"
	CategoryCommerce    Category = "commerce"
	CategoryCompany     Category = "company"
	CategoryDatabase    Category = "database"
	CategoryDate        Category = "date"
	CategoryFinance     Category = "finance"
	CategoryHacker      Category = "hacker"
	CategoryInternet    Category = "internet"
	CategoryLorem       Category = "lorem"
	CategoryMusic       Category = "music"
	CategoryName        Category = "name"
	CategoryPhoneNumber Category = "phone_number"
	CategorySystem      Category = "system"
	CategoryVehicle     Category = "vehicle"
	CategoryWord        Category = "word"
)

// Value is the payload stored under one property: either an ordered list of
// candidate strings or a concrete structured object.
type Value struct {
	candidates []string
	object     any
	list       bool
}

// Candidates builds a candidate-list value. The slice is copied.
func Candidates(values ...string) Value {
	if values == nil {
		values = []string{}
	}
	return Value{candidates: clone.Strings(values), list: true}
}

// Object builds a structured value. The payload is deep copied.
func Object(value any) Value {
	return Value{object: clone.Of(value)}
}

// IsCandidates reports whether v holds a candidate list.
func (v Value) IsCandidates() bool {
	return v.list
}

// IsZero reports whether v carries neither candidates nor an object.
func (v Value) IsZero() bool {
	return !v.list && v.object == nil
}

// Len returns the number of candidates, or zero for objects.
func (v Value) Len() int {
	return len(v.candidates)
}

// Candidates returns a copy of the candidate list, nil for objects.
func (v Value) Candidates() []string {
	if !v.list {
		return nil
	}
	return clone.Strings(v.candidates)
}

// Object returns a deep copy of the structured payload, nil for lists.
func (v Value) Object() any {
	if v.list {
		return nil
	}
	return clone.Of(v.object)
}

// Any returns the payload as []string or as the structured object.
func (v Value) Any() any {
	if v.list {
		return v.Candidates()
	}
	return v.Object()
}

func (v Value) typeName() string {
	if v.list {
		return "[]string"
	}
	return typeName(v.object)
}

// Definitions maps property names to values within one category.
type Definitions map[string]Value

// Pack is the data supplied for one locale. Categories outside the declared
// schema are kept verbatim in Extra and still resolve when they are objects
// keyed by property name.
type Pack struct {
	Code       string
	Title      string
	Separator  string
	Categories map[Category]Definitions
	Extra      map[string]any
}

// Lookup returns the value for category/property when this pack defines it.
func (p Pack) Lookup(category Category, property string) (Value, bool) {
	if defs, ok := p.Categories[category]; ok {
		if value, ok := defs[property]; ok {
			return value, true
		}
	}
	group, ok := p.Extra[string(category)].(map[string]any)
	if !ok {
		return Value{}, false
	}
	raw, ok := group[property]
	if !ok || raw == nil {
		return Value{}, false
	}
	return valueOf(raw), true
}

// Missing lists the properties of category absent from the pack, sorted.
func (p Pack) Missing(category Category, properties []string) []string {
	var missing []string
	for _, property := range properties {
		if _, ok := p.Lookup(category, property); !ok {
			missing = append(missing, property)
		}
	}
	sort.Strings(missing)
	return missing
}

// PackFromMap converts a decoded JSON/YAML document into a Pack. Declared
// categories must be objects; every other top-level key lands in Extra.
func PackFromMap(code string, payload map[string]any) (Pack, error) {
	pack := Pack{Code: code}
	for key, raw := range payload {
		switch key {
		case "title":
			title, ok := raw.(string)
			if !ok {
				return Pack{}, fmt.Errorf("faker: pack %q: title must be a string, got %T", code, raw)
			}
			pack.Title = title
			continue
		case "separator":
			separator, ok := raw.(string)
			if !ok {
				return Pack{}, fmt.Errorf("faker: pack %q: separator must be a string, got %T", code, raw)
			}
			pack.Separator = separator
			continue
		}
		category := Category(key)
		if !isDeclaredCategory(category) {
			if pack.Extra == nil {
				pack.Extra = map[string]any{}
			}
			pack.Extra[key] = clone.Of(raw)
			continue
		}
		group, ok := raw.(map[string]any)
		if !ok {
			return Pack{}, fmt.Errorf("faker: pack %q: category %q must be an object, got %T", code, key, raw)
		}
		defs := make(Definitions, len(group))
		for property, value := range group {
			if value == nil {
				continue
			}
			defs[property] = valueOf(value)
		}
		if pack.Categories == nil {
			pack.Categories = map[Category]Definitions{}
		}
		pack.Categories[category] = defs
	}
	return pack, nil
}

func valueOf(raw any) Value {
	switch typed := raw.(type) {
	case Value:
		return typed
	case []string:
		return Candidates(typed...)
	case []any:
		values := make([]string, 0, len(typed))
		for _, item := range typed {
			text, ok := item.(string)
			if !ok {
				return Object(typed)
			}
			values = append(values, text)
		}
		return Candidates(values...)
	default:
		return Object(typed)
	}
}
