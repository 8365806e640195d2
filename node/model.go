package node

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Populator is a model: a named schema plus the knowledge of how to build a
// record out of converted field values.
type Populator interface {
	// Name identifies the model in a Registry and in error messages.
	Name() string
	// Schema returns the descriptors of the model fields. It must return the
	// same value for the lifetime of the process.
	Schema() Schema
	// Fields lists every field a record can hold, including fields that
	// have no descriptor in the schema.
	Fields() []string
	// Build creates a fresh record from converted field values.
	Build(fields map[string]any, logger *slog.Logger) any
}

// opener is implemented by models accepting any input key as a field.
type opener interface {
	Open() bool
}

// lazySchema evaluates a schema function once. Deferring the call lets a
// schema refer to its own model.
type lazySchema struct {
	fn     func() Schema
	once   sync.Once
	schema Schema
}

func (l *lazySchema) get() Schema {
	l.once.Do(func() {
		if l.fn != nil {
			l.schema = l.fn()
		}

		if l.schema == nil {
			l.schema = Schema{}
		}
	})

	return l.schema
}

// Setter applies a converted value to a field of *T.
type Setter[T any] func(rec *T, value any, logger *slog.Logger)

// Setters is a hand-written "apply field" table for a model.
type Setters[T any] map[string]Setter[T]

// Model populates records of type T.
type Model[T any] struct {
	name    string
	schema  lazySchema
	setters Setters[T]
	fields  []string
}

// NewModel binds the exported fields of struct T by name and creates the
// model. The field name is taken from the `field` tag, then from the `json`
// tag, then from the Go field name. Binding happens here, once, so
// populating a record only calls the prepared setters.
func NewModel[T any](name string, schema func() Schema) (*Model[T], error) {
	rtype := reflect.TypeFor[T]()
	if rtype.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, rtype)
	}

	setters, err := bindFields[T](rtype)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = rtype.Name()
	}

	return NewModelWith(name, schema, setters)
}

// NewModelWith creates a model from hand-written setters; T may be any type.
func NewModelWith[T any](name string, schema func() Schema, setters Setters[T]) (*Model[T], error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	m := &Model[T]{
		name:    name,
		schema:  lazySchema{fn: schema},
		setters: maps.Clone(setters),
	}
	if m.setters == nil {
		m.setters = Setters[T]{}
	}

	m.fields = slices.Sorted(maps.Keys(m.setters))

	return m, nil
}

// MustModel is like NewModel but panics on error.
func MustModel[T any](name string, schema func() Schema) *Model[T] {
	m, err := NewModel[T](name, schema)
	if err != nil {
		panic(err)
	}

	return m
}

func (m *Model[T]) Name() string     { return m.name }
func (m *Model[T]) Schema() Schema   { return m.schema.get() }
func (m *Model[T]) Fields() []string { return slices.Clone(m.fields) }

// Build returns a T value with every known field applied.
func (m *Model[T]) Build(fields map[string]any, logger *slog.Logger) any {
	var rec T

	for name, value := range fields {
		if set, ok := m.setters[name]; ok {
			set(&rec, value, logger)
		}
	}

	return rec
}

// DynamicModel populates map-backed Records.
type DynamicModel struct {
	name   string
	schema lazySchema
	extra  []string
	open   bool
}

func NewDynamicModel(name string, schema func() Schema) *DynamicModel {
	return &DynamicModel{
		name:   name,
		schema: lazySchema{fn: schema},
	}
}

// WithFields declares fields that have no descriptor; their values pass
// through unconverted.
func (m *DynamicModel) WithFields(names ...string) *DynamicModel {
	m.extra = append(m.extra, names...)
	return m
}

// WithOpen makes every input key a field of the record.
func (m *DynamicModel) WithOpen(open bool) *DynamicModel {
	m.open = open
	return m
}

func (m *DynamicModel) Name() string   { return m.name }
func (m *DynamicModel) Schema() Schema { return m.schema.get() }
func (m *DynamicModel) Open() bool     { return m.open }

func (m *DynamicModel) Fields() []string {
	names := slices.Collect(maps.Keys(m.Schema()))
	names = append(names, m.extra...)
	slices.Sort(names)

	return slices.Compact(names)
}

func (m *DynamicModel) Build(fields map[string]any, _ *slog.Logger) any {
	rec := make(Record, len(fields))
	maps.Copy(rec, fields)

	return rec
}
