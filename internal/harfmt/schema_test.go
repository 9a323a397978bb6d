package harfmt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSchemaDescribesArchive(t *testing.T) {
	data, err := SchemaJSON(2)
	if err != nil {
		t.Fatalf("SchemaJSON: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["$id"] != SchemaID {
		t.Errorf("$id = %v", doc["$id"])
	}
	for _, field := range []string{`"_red_messages"`, `"pageref"`, `"subrequests"`, `"redirectURL"`, `"^page[0-9]+$"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("schema lacks %s", field)
		}
	}
	if strings.Contains(string(data), `"$defs"`) {
		t.Error("schema should be fully inlined")
	}
}
