package serializer

// IRPCSerializer is the interface for all protocol serializers. The
// protocol carries two shapes: *common.Request on the way in and the
// response payload (an arbitrary JSON-safe value) on the way out, so the
// interface is generic over both.
type IRPCSerializer interface {
	// Serialize serializes a value into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(v any) ([]byte, error)
	// Deserialize deserializes a byte array into the given target
	// It takes a byte array and a pointer as parameters
	// It returns an error if any
	Deserialize(b []byte, v any) error
}
