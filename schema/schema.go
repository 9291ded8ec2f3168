// Package schema provides a fluent API for building JSON Schema objects
// for function parameters by hand, without reflection:
//
//	params := schema.Object().
//		Field("expression", schema.String().Desc("Math expression").Required()).
//		Field("precision", schema.Int().Min(0).Max(10).Default(2)).
//		MustBuild()
//
// Use Build instead of MustBuild to handle validation errors (for
// example a minimum that exceeds its maximum) at construction time.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Builder is the interface implemented by all schema builders.
type Builder interface {
	// Build serializes the schema to json.RawMessage.
	// Returns an error if the schema is invalid.
	Build() (json.RawMessage, error)

	// MustBuild is like Build but panics on error.
	MustBuild() json.RawMessage

	// schema returns the internal representation for composition.
	schema() *schemaNode
}

// schemaNode is the internal representation of a JSON Schema.
type schemaNode struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`

	// String constraints
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Numeric constraints
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Array constraints
	Items    *schemaNode `json:"items,omitempty"`
	MinItems *int        `json:"minItems,omitempty"`
	MaxItems *int        `json:"maxItems,omitempty"`

	// Object constraints
	Properties map[string]*schemaNode `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// Sentinel errors for schema validation.
var (
	// ErrInvalidRange is returned when a minimum exceeds its maximum.
	ErrInvalidRange = errors.New("schema: minimum exceeds maximum")

	// ErrNilItems is returned when an array has no items schema.
	ErrNilItems = errors.New("schema: array requires items schema")
)

// ValidationError represents a schema construction failure.
type ValidationError struct {
	Field   string // the field name, for objects
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validate checks the schema for internal consistency.
func (s *schemaNode) validate() error {
	switch s.Type {
	case "string":
		if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
			return &ValidationError{Message: "minLength exceeds maxLength", Err: ErrInvalidRange}
		}

	case "integer", "number":
		if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
			return &ValidationError{Message: "minimum exceeds maximum", Err: ErrInvalidRange}
		}

	case "array":
		if s.Items == nil {
			return &ValidationError{Message: "array requires items schema", Err: ErrNilItems}
		}
		if s.MinItems != nil && s.MaxItems != nil && *s.MinItems > *s.MaxItems {
			return &ValidationError{Message: "minItems exceeds maxItems", Err: ErrInvalidRange}
		}
		if err := s.Items.validate(); err != nil {
			return err
		}

	case "object":
		for name, prop := range s.Properties {
			if err := prop.validate(); err != nil {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Field == "" {
					ve.Field = name
				}
				return err
			}
		}
	}
	return nil
}

func buildNode(node *schemaNode) (json.RawMessage, error) {
	if err := node.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func mustBuildNode(node *schemaNode) json.RawMessage {
	raw, err := buildNode(node)
	if err != nil {
		panic(err)
	}
	return raw
}

func ptr[T any](v T) *T {
	return &v
}

// RequiredField wraps a builder to mark it required when attached to an
// object with ObjectBuilder.Field.
type RequiredField struct {
	builder Builder
}
