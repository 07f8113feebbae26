package serializer

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/skaiser/dgate/rpc/common"
)

// gobEnvelope wraps the serialized value. The indirection lets gob carry
// interface-typed payloads, including nil (the field is simply omitted).
type gobEnvelope struct {
	V any
}

func init() {
	// requests and payloads travel as interface values; gob needs every
	// concrete type registered
	gob.Register(common.Request{})
	gob.Register(common.Params{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IRPCSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(v any) ([]byte, error) {
	// normalize the request pointer so both sides exchange the same type
	if r, ok := v.(*common.Request); ok {
		v = *r
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(gobEnvelope{V: v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, v any) error {
	var env gobEnvelope
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(&env); err != nil {
		return err
	}

	switch target := v.(type) {
	case *any:
		*target = env.V
		return nil
	case *common.Request:
		req, ok := env.V.(common.Request)
		if !ok {
			return fmt.Errorf("gob: expected a request, got %T", env.V)
		}
		*target = req
		return nil
	default:
		return fmt.Errorf("gob: unsupported deserialization target %T", v)
	}
}
