package engine

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/wricardo/hexoban/game/hex"
)

var (
	coordType     = reflect.TypeOf(hex.Coord{})
	directionType = reflect.TypeOf(hex.Direction(0))
)

// mapHexTypes describes the custom JSON encodings of the hex types, which the
// reflector cannot see from their struct fields.
func mapHexTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case coordType:
		return &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "integer"},
			Description: "axial coordinate [i, j]",
		}
	case directionType:
		enum := make([]interface{}, 0, hex.NumDirections)
		for _, d := range hex.Directions {
			enum = append(enum, d.String())
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return nil
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         mapHexTypes,
	}
}

// DefinitionSchema returns the JSON Schema of the definition record.
func DefinitionSchema() *jsonschema.Schema {
	s := reflector().Reflect(&Definition{})
	s.Title = "Hexoban puzzle definition"
	return s
}

// PushRecordSchema returns the JSON Schema of a single history entry.
func PushRecordSchema() *jsonschema.Schema {
	return reflector().Reflect(&PushRecord{})
}

// SchemaJSON renders the definition schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(DefinitionSchema(), "", "  ")
}
