package serializer

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// NewCBORSerializer creates a new serializer using the CBOR binary format.
// It is the compact alternative to JSON for deployments where both ends are
// this implementation.
func NewCBORSerializer() IRPCSerializer {
	// decode maps as map[string]any so payloads look exactly like their
	// JSON-decoded counterparts
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return &cborSerializerImpl{dec: dm}
}

// cborSerializerImpl implements the IRPCSerializer interface using cbor encoding
type cborSerializerImpl struct {
	dec cbor.DecMode
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (c cborSerializerImpl) Serialize(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (c cborSerializerImpl) Deserialize(b []byte, v any) error {
	return c.dec.Unmarshal(b, v)
}
