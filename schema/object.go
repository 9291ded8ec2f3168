package schema

import "encoding/json"

// Object creates a new object schema builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		node: &schemaNode{
			Type:       "object",
			Properties: make(map[string]*schemaNode),
		},
	}
}

// ObjectBuilder constructs object type schemas.
type ObjectBuilder struct {
	node *schemaNode
}

// Desc sets the description for this object.
func (b *ObjectBuilder) Desc(description string) *ObjectBuilder {
	b.node.Description = description
	return b
}

// Field adds a named property. Accepts either a Builder or a
// *RequiredField wrapper; a required field is added to the object's
// required list.
func (b *ObjectBuilder) Field(name string, field any) *ObjectBuilder {
	switch f := field.(type) {
	case *RequiredField:
		b.node.Properties[name] = f.builder.schema()
		b.node.Required = append(b.node.Required, name)
	case Builder:
		b.node.Properties[name] = f.schema()
	}
	return b
}

// Required marks this object as required when nested in another object.
func (b *ObjectBuilder) Required() *RequiredField {
	return &RequiredField{builder: b}
}

// Build serializes the schema.
func (b *ObjectBuilder) Build() (json.RawMessage, error) { return buildNode(b.node) }

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() json.RawMessage { return mustBuildNode(b.node) }

func (b *ObjectBuilder) schema() *schemaNode { return b.node }
