package faker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-faker/internal/clone"
)

const (
	metaTitle     Category = "title"
	metaSeparator Category = "separator"
)

type schemaKind uint8

const (
	schemaLiteral schemaKind = iota + 1
	schemaProperties
)

// Schema binds a category either to a literal value or to a fixed list of
// properties resolved through the locale resolver.
type Schema struct {
	kind       schemaKind
	literal    any
	properties []string
}

// Literal binds a category to value. Maps expose their keys as properties.
func Literal(value any) Schema {
	return Schema{kind: schemaLiteral, literal: clone.Of(value)}
}

// Properties binds a category to the named properties.
func Properties(names ...string) Schema {
	return Schema{kind: schemaProperties, properties: clone.Strings(names)}
}

type entry struct {
	category   Category
	schema     Schema
	properties map[string]struct{}
}

// Registry holds the category schema. Categories are registered once and their
// property set never changes afterwards.
type Registry struct {
	mu       sync.RWMutex
	resolver *Resolver
	entries  map[Category]*entry
	order    []Category
}

// NewRegistry binds a registry to resolver. The fallback pack must be loaded.
func NewRegistry(resolver *Resolver) (*Registry, error) {
	if resolver == nil {
		return nil, fmt.Errorf("faker: registry requires a resolver")
	}
	fallback := resolver.FallbackLocale()
	if _, ok := resolver.Pack(fallback); !ok {
		return nil, &IncompleteFallbackError{Locale: fallback}
	}
	return &Registry{
		resolver: resolver,
		entries:  map[Category]*entry{},
	}, nil
}

// Register adds category with schema. Property schemas are checked against the
// fallback pack so every later lookup is guaranteed to resolve.
func (r *Registry) Register(category Category, schema Schema) error {
	if category == "" {
		return ErrCategoryRequired
	}
	e := &entry{category: category, schema: schema}
	switch schema.kind {
	case schemaLiteral:
	case schemaProperties:
		e.properties = make(map[string]struct{}, len(schema.properties))
		for _, property := range schema.properties {
			if _, dup := e.properties[property]; dup {
				return fmt.Errorf("%w: %s.%s", ErrDuplicateProperty, category, property)
			}
			e.properties[property] = struct{}{}
		}
		fallback := r.resolver.FallbackLocale()
		pack, ok := r.resolver.Pack(fallback)
		if !ok {
			return &IncompleteFallbackError{Locale: fallback}
		}
		if missing := pack.Missing(category, schema.properties); len(missing) > 0 {
			return &IncompleteFallbackError{Locale: fallback, Category: category, Missing: missing}
		}
	default:
		return fmt.Errorf("faker: category %q: schema must be Literal or Properties", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[category]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, category)
	}
	r.entries[category] = e
	r.order = append(r.order, category)
	log.Tracef("registered category %s", category)
	return nil
}

// Category returns an accessor for a registered category.
func (r *Registry) Category(category Category) (*Accessor, error) {
	r.mu.RLock()
	e, ok := r.entries[category]
	r.mu.RUnlock()
	if !ok {
		return nil, &MissingDefinitionError{Category: category, Locale: r.resolver.Locale()}
	}
	return &Accessor{entry: e, resolver: r.resolver}, nil
}

// Categories returns registered categories in registration order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Category(nil), r.order...)
}

// Schema describes every registered property with the type found in the
// fallback pack.
func (r *Registry) Schema() SchemaDocument {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.order))
	for _, category := range r.order {
		entries = append(entries, r.entries[category])
	}
	r.mu.RUnlock()

	pack, _ := r.resolver.Pack(r.resolver.FallbackLocale())
	fields := []FieldDescriptor{}
	for _, e := range entries {
		if e.schema.kind == schemaLiteral {
			literal := deriveFieldDescriptors(e.schema.literal, string(e.category))
			if len(literal) == 0 {
				literal = []FieldDescriptor{{Path: string(e.category), Type: typeName(e.schema.literal)}}
			}
			fields = append(fields, literal...)
			continue
		}
		properties := append([]string(nil), e.schema.properties...)
		sort.Strings(properties)
		for _, property := range properties {
			value, _ := pack.Lookup(e.category, property)
			fields = append(fields, FieldDescriptor{
				Path: joinPath(string(e.category), property),
				Type: value.typeName(),
			})
		}
	}
	return SchemaDocument{Format: SchemaFormatDescriptors, Document: fields}
}

// RegisterDefaults registers the declared categories plus title and separator
// literals taken from the fallback pack.
func RegisterDefaults(reg *Registry) error {
	return registerSchema(reg, nil)
}

func registerSchema(reg *Registry, schema map[Category][]string) error {
	if reg == nil {
		return fmt.Errorf("faker: registry is nil")
	}
	pack, _ := reg.resolver.Pack(reg.resolver.FallbackLocale())
	if err := reg.Register(metaTitle, Literal(pack.Title)); err != nil {
		return err
	}
	if err := reg.Register(metaSeparator, Literal(pack.Separator)); err != nil {
		return err
	}
	if schema == nil {
		for _, declared := range declaredSchema {
			if err := reg.Register(declared.category, Properties(declared.properties...)); err != nil {
				return err
			}
		}
		return nil
	}
	categories := make([]Category, 0, len(schema))
	for category := range schema {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, category := range categories {
		if err := reg.Register(category, Properties(schema[category]...)); err != nil {
			return err
		}
	}
	return nil
}

// Accessor reads properties of one registered category.
type Accessor struct {
	entry    *entry
	resolver *Resolver
}

// Name returns the category name.
func (a *Accessor) Name() Category {
	return a.entry.category
}

// IsLiteral reports whether the category is bound to a literal.
func (a *Accessor) IsLiteral() bool {
	return a.entry.schema.kind == schemaLiteral
}

// Value returns a copy of the literal bound to the category.
func (a *Accessor) Value() (any, bool) {
	if !a.IsLiteral() {
		return nil, false
	}
	return clone.Of(a.entry.schema.literal), true
}

// Properties returns the property names in declaration order. Literal maps
// report their keys sorted.
func (a *Accessor) Properties() []string {
	if a.IsLiteral() {
		group, ok := a.entry.schema.literal.(map[string]any)
		if !ok {
			return nil
		}
		keys := make([]string, 0, len(group))
		for key := range group {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	}
	return clone.Strings(a.entry.schema.properties)
}

// Get returns property. Resolver-backed categories are resolved on every call
// against the locale active at that moment.
func (a *Accessor) Get(property string) (Resolved, error) {
	if a.IsLiteral() {
		return a.literal(property)
	}
	if _, ok := a.entry.properties[property]; !ok {
		return Resolved{}, &MissingDefinitionError{
			Category: a.entry.category,
			Property: property,
			Locale:   a.resolver.Locale(),
		}
	}
	return a.resolver.Resolve(a.entry.category, property)
}

func (a *Accessor) literal(property string) (Resolved, error) {
	resolved := Resolved{
		Category: a.entry.category,
		Property: property,
		Locale:   a.resolver.Locale(),
	}
	group, ok := a.entry.schema.literal.(map[string]any)
	if !ok {
		resolved.Value = valueOf(a.entry.schema.literal)
		return resolved, nil
	}
	raw, ok := group[property]
	if !ok {
		return Resolved{}, &MissingDefinitionError{
			Category: a.entry.category,
			Property: property,
			Locale:   resolved.Locale,
		}
	}
	resolved.Value = valueOf(raw)
	return resolved, nil
}
