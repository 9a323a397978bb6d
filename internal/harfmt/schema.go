package harfmt

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the archive schema.
const SchemaID = "https://redtrace.dev/schema/har-1.1.json"

// Schema returns the JSON Schema of ArchiveJSON, inlined without $defs.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := reflector.Reflect(&ArchiveJSON{})
	s.ID = SchemaID
	s.Title = "HAR 1.1 archive"
	return s
}

// SchemaJSON renders Schema with the given indentation.
func SchemaJSON(indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(Schema(), "", fmt.Sprintf("%*s", indent, ""))
	} else {
		data, err = json.Marshal(Schema())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return data, nil
}
