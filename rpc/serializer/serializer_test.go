package serializer

import (
	"reflect"
	"testing"

	"github.com/skaiser/dgate/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON": NewJSONSerializer,
	"GOB":  NewGOBSerializer,
	"CBOR": NewCBORSerializer,
}

// TestRequestRoundTrip tests that requests survive a round trip through
// every serializer.
func TestRequestRoundTrip(t *testing.T) {
	req := common.Request{
		Target: common.TargetRelational,
		Tenant: "t1",
		Model:  "Student",
		Method: "findById",
		Params: common.Params{"5"},
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			data, err := s.Serialize(&req)
			if err != nil {
				t.Fatalf("Failed to serialize request: %v", err)
			}

			var result common.Request
			if err := s.Deserialize(data, &result); err != nil {
				t.Fatalf("Failed to deserialize request: %v", err)
			}

			if !reflect.DeepEqual(req, result) {
				t.Errorf("Request doesn't match after round trip:\nOriginal: %+v\nResult: %+v", req, result)
			}
		})
	}
}

// TestPayloadRoundTrip tests that response payloads survive a round trip.
func TestPayloadRoundTrip(t *testing.T) {
	payloads := []any{
		nil,
		"a plain string",
		map[string]any{"error": "test error message"},
		map[string]any{"name": "Ada", "tags": []any{"x", "y"}},
		[]any{map[string]any{"id": "1"}, map[string]any{"id": "2"}},
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			for i, payload := range payloads {
				data, err := s.Serialize(payload)
				if err != nil {
					t.Errorf("Failed to serialize payload %d: %v", i, err)
					continue
				}

				var result any
				if err := s.Deserialize(data, &result); err != nil {
					t.Errorf("Failed to deserialize payload %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(payload, result) {
					t.Errorf("Payload %d doesn't match after round trip:\nOriginal: %#v\nResult: %#v", i, payload, result)
				}
			}
		})
	}
}

// TestJSONWireShape pins the JSON wire format, which is the protocol's
// published encoding.
func TestJSONWireShape(t *testing.T) {
	s := NewJSONSerializer()

	req := common.Request{
		Target: common.TargetCachedRecord,
		Tenant: "t1",
		Model:  "student",
		Method: "getParents",
	}
	data, err := s.Serialize(&req)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"db":"CachedRecord","tenant":"t1","model":"student","method":"getParents"}`
	if string(data) != want {
		t.Errorf("wire format = %s, want %s", data, want)
	}
}
