package builtins

import (
	"encoding/json"
	"testing"

	"jyro/pkg/value"
)

func TestToJSONAndFromJSONRoundTripThroughEncodingJSON(t *testing.T) {
	obj := value.NewObject()
	obj.SetProperty("name", value.String("Alice"))
	obj.SetProperty("age", value.Number(30))
	obj.SetProperty("tags", value.NewArray(value.String("a"), value.String("b")))
	obj.SetProperty("active", value.True)
	obj.SetProperty("nickname", value.Null)

	raw, err := json.Marshal(ToJSON(obj))
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	roundTripped := FromJSON(decoded)
	if roundTripped.Property("name").AsString() != "Alice" {
		t.Errorf("name = %q, want Alice", roundTripped.Property("name").AsString())
	}
	if roundTripped.Property("age").AsNumber() != 30 {
		t.Errorf("age = %v, want 30", roundTripped.Property("age").AsNumber())
	}
	if roundTripped.Property("tags").Len() != 2 {
		t.Errorf("tags length = %d, want 2", roundTripped.Property("tags").Len())
	}
	if !roundTripped.Property("active").AsBool() {
		t.Errorf("active = false, want true")
	}
	if roundTripped.Property("nickname").Kind() != value.KindNull {
		t.Errorf("nickname kind = %v, want Null", roundTripped.Property("nickname").Kind())
	}
}
