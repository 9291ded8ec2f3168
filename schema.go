package gptplayers

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SchemaError indicates that a parameter schema could not be derived
// from a Go type. It is a registration-time error: it is reported when
// a function is registered, never when the model calls it.
type SchemaError struct {
	Type  string // the offending Go type
	Field string // the struct field, if applicable
	Msg   string
}

// Error returns a formatted message describing the schema failure.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: field %q (%s): %s", e.Field, e.Type, e.Msg)
	}
	return fmt.Sprintf("schema: %s: %s", e.Type, e.Msg)
}

// propertyDef holds the definition of a single schema property.
type propertyDef struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Enum        []any          `json:"enum,omitempty"`
	Default     any            `json:"default,omitempty"`
	Items       *propertyDef   `json:"items,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Required    []string       `json:"required,omitempty"`
}

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names come from json tags; JSON Schema types are inferred from
// the Go types. Struct tags refine the schema:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	    Kind  string `json:"kind" enum:"web,news,images"`
//	    Limit int    `json:"limit" desc:"Max results" default:"10"`
//	}
//
// Types that cannot be represented in the interchange format (channels,
// funcs, complex numbers, bare interfaces) fail with *SchemaError.
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, &SchemaError{Type: "interface {}", Msg: "cannot derive schema from an interface type"}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t.String(), Msg: "parameter type must be a struct"}
	}

	obj, err := schemaFromStruct(t)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(obj.toMap())
	if err != nil {
		return nil, &SchemaError{Type: t.String(), Msg: err.Error()}
	}
	return data, nil
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

type objectDef struct {
	properties    map[string]*propertyDef
	propertyOrder []string
	required      []string
}

func schemaFromStruct(t reflect.Type) (*objectDef, error) {
	obj := &objectDef{
		properties:    make(map[string]*propertyDef),
		propertyOrder: make([]string, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop, err := propertyFromType(field.Type, name)
		if err != nil {
			return nil, err
		}

		if desc := field.Tag.Get("desc"); desc != "" {
			prop.Description = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			for _, v := range strings.Split(enum, ",") {
				parsed, err := parseTagValue(strings.TrimSpace(v), prop.Type)
				if err != nil {
					return nil, &SchemaError{Type: field.Type.String(), Field: name, Msg: err.Error()}
				}
				prop.Enum = append(prop.Enum, parsed)
			}
		}
		if def := field.Tag.Get("default"); def != "" {
			parsed, err := parseTagValue(def, prop.Type)
			if err != nil {
				return nil, &SchemaError{Type: field.Type.String(), Field: name, Msg: err.Error()}
			}
			prop.Default = parsed
		}
		if field.Tag.Get("required") == "true" {
			obj.required = append(obj.required, name)
		}

		obj.properties[name] = prop
		obj.propertyOrder = append(obj.propertyOrder, name)
	}

	return obj, nil
}

func propertyFromType(t reflect.Type, field string) (*propertyDef, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &propertyDef{Type: "string"}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &propertyDef{Type: "integer"}, nil

	case reflect.Float32, reflect.Float64:
		return &propertyDef{Type: "number"}, nil

	case reflect.Bool:
		return &propertyDef{Type: "boolean"}, nil

	case reflect.Slice, reflect.Array:
		items, err := propertyFromType(t.Elem(), field)
		if err != nil {
			return nil, err
		}
		return &propertyDef{Type: "array", Items: items}, nil

	case reflect.Struct:
		nested, err := schemaFromStruct(t)
		if err != nil {
			return nil, err
		}
		props := make(map[string]any)
		for _, name := range nested.propertyOrder {
			props[name] = nested.properties[name].toMap()
		}
		prop := &propertyDef{Type: "object", Properties: props}
		if len(nested.required) > 0 {
			prop.Required = nested.required
		}
		return prop, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &SchemaError{Type: t.String(), Field: field, Msg: "map keys must be strings"}
		}
		// Maps become objects with no defined properties.
		return &propertyDef{Type: "object"}, nil

	default:
		return nil, &SchemaError{Type: t.String(), Field: field, Msg: "type is not representable in JSON Schema"}
	}
}

// parseTagValue converts an enum or default tag value to the Go value
// matching the property's schema type, so the emitted schema carries
// numbers and booleans rather than their string spellings.
func parseTagValue(raw, schemaType string) (any, error) {
	switch schemaType {
	case "string":
		return raw, nil
	case "integer":
		return strconv.Atoi(raw)
	case "number":
		return strconv.ParseFloat(raw, 64)
	case "boolean":
		return strconv.ParseBool(raw)
	default:
		return nil, fmt.Errorf("enum and default values are only supported for primitive types")
	}
}

func (o *objectDef) toMap() map[string]any {
	result := map[string]any{
		"type": "object",
	}

	props := make(map[string]any)
	for _, name := range o.propertyOrder {
		props[name] = o.properties[name].toMap()
	}
	result["properties"] = props

	if len(o.required) > 0 {
		result["required"] = o.required
	}
	return result
}

func (p *propertyDef) toMap() map[string]any {
	result := map[string]any{
		"type": p.Type,
	}
	if p.Description != "" {
		result["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		result["enum"] = p.Enum
	}
	if p.Default != nil {
		result["default"] = p.Default
	}
	if p.Items != nil {
		result["items"] = p.Items.toMap()
	}
	if p.Properties != nil {
		result["properties"] = p.Properties
	}
	if len(p.Required) > 0 {
		result["required"] = p.Required
	}
	return result
}
