package node

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMissing  = errors.New("target has no schema")
	ErrNotAStruct     = errors.New("model type is not a struct")
	ErrDuplicateField = errors.New("field name is bound twice")
	ErrEmptyName      = errors.New("model name cannot be empty")
	ErrDuplicateModel = errors.New("model name already registered")
	ErrCasterInput    = errors.New("value does not fit the caster input type")
)

// SchemaMissingError reports a populate target that is not a model. Target
// holds the offending value: a model name that did not resolve, a nil
// model, or any other value.
type SchemaMissingError struct {
	Target any
}

func (e *SchemaMissingError) Error() string {
	switch t := e.Target.(type) {
	case nil:
		return "schema missing for <nil>"
	case string:
		return fmt.Sprintf("schema missing for model %q", t)
	default:
		return fmt.Sprintf("schema missing for %T", t)
	}
}

func (e *SchemaMissingError) Is(target error) bool {
	return target == ErrSchemaMissing
}
