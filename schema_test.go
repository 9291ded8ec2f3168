package gptplayers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSchema(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	return schema
}

func TestSchemaFor(t *testing.T) {
	t.Run("basic struct", func(t *testing.T) {
		type args struct {
			Query string `json:"query" desc:"Search query" required:"true"`
			Limit int    `json:"limit" desc:"Max results"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		assert.Equal(t, "object", schema["type"])

		props := schema["properties"].(map[string]any)
		query := props["query"].(map[string]any)
		assert.Equal(t, "string", query["type"])
		assert.Equal(t, "Search query", query["description"])

		limit := props["limit"].(map[string]any)
		assert.Equal(t, "integer", limit["type"])

		assert.Equal(t, []any{"query"}, schema["required"])
	})

	t.Run("enum and default tags", func(t *testing.T) {
		type args struct {
			Unit  string  `json:"unit" enum:"celsius,fahrenheit" default:"celsius"`
			Ratio float64 `json:"ratio" default:"0.5"`
			Deep  bool    `json:"deep" default:"true"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		unit := props["unit"].(map[string]any)
		assert.ElementsMatch(t, []any{"celsius", "fahrenheit"}, unit["enum"])
		assert.Equal(t, "celsius", unit["default"])

		ratio := props["ratio"].(map[string]any)
		assert.Equal(t, "number", ratio["type"])
		assert.Equal(t, 0.5, ratio["default"])

		deep := props["deep"].(map[string]any)
		assert.Equal(t, "boolean", deep["type"])
		assert.Equal(t, true, deep["default"])
	})

	t.Run("enum values match the field type", func(t *testing.T) {
		type args struct {
			Sides int     `json:"sides" enum:"6,20"`
			Scale float64 `json:"scale" enum:"0.5,1.0,2.0"`
			Loud  bool    `json:"loud" enum:"true,false"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		sides := props["sides"].(map[string]any)
		assert.ElementsMatch(t, []any{float64(6), float64(20)}, sides["enum"])

		scale := props["scale"].(map[string]any)
		assert.ElementsMatch(t, []any{0.5, 1.0, 2.0}, scale["enum"])

		loud := props["loud"].(map[string]any)
		assert.ElementsMatch(t, []any{true, false}, loud["enum"])
	})

	t.Run("arrays and nested structs", func(t *testing.T) {
		type point struct {
			X float64 `json:"x" required:"true"`
			Y float64 `json:"y" required:"true"`
		}
		type args struct {
			Tags   []string `json:"tags"`
			Origin point    `json:"origin"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)

		tags := props["tags"].(map[string]any)
		assert.Equal(t, "array", tags["type"])
		assert.Equal(t, "string", tags["items"].(map[string]any)["type"])

		origin := props["origin"].(map[string]any)
		assert.Equal(t, "object", origin["type"])
		originProps := origin["properties"].(map[string]any)
		assert.Contains(t, originProps, "x")
		assert.Contains(t, originProps, "y")
		assert.ElementsMatch(t, []any{"x", "y"}, origin["required"])
	})

	t.Run("string-keyed maps become open objects", func(t *testing.T) {
		type args struct {
			Meta map[string]string `json:"meta"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Equal(t, "object", props["meta"].(map[string]any)["type"])
	})

	t.Run("unexported and skipped fields are ignored", func(t *testing.T) {
		type args struct {
			Visible string `json:"visible"`
			Skipped string `json:"-"`
			hidden  string
		}
		_ = args{hidden: ""}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		props := decodeSchema(t, raw)["properties"].(map[string]any)
		assert.Contains(t, props, "visible")
		assert.NotContains(t, props, "Skipped")
		assert.Len(t, props, 1)
	})

	t.Run("empty struct yields empty object schema", func(t *testing.T) {
		raw, err := SchemaFor[struct{}]()
		require.NoError(t, err)

		schema := decodeSchema(t, raw)
		assert.Equal(t, "object", schema["type"])
		assert.Empty(t, schema["properties"])
	})
}

func TestSchemaForErrors(t *testing.T) {
	t.Run("func field", func(t *testing.T) {
		type args struct {
			Fn func() `json:"fn"`
		}
		_, err := SchemaFor[args]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "fn", schemaErr.Field)
	})

	t.Run("channel field", func(t *testing.T) {
		type args struct {
			Ch chan int `json:"ch"`
		}
		_, err := SchemaFor[args]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("non-string map key", func(t *testing.T) {
		type args struct {
			ByID map[int]string `json:"by_id"`
		}
		_, err := SchemaFor[args]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Msg, "map keys")
	})

	t.Run("non-struct type", func(t *testing.T) {
		_, err := SchemaFor[int]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("bad enum tag", func(t *testing.T) {
		type args struct {
			Sides int `json:"sides" enum:"6,many"`
		}
		_, err := SchemaFor[args]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "sides", schemaErr.Field)
	})

	t.Run("bad default tag", func(t *testing.T) {
		type args struct {
			Limit int `json:"limit" default:"lots"`
		}
		_, err := SchemaFor[args]()
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("MustSchemaFor panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustSchemaFor[int]()
		})
	})
}
