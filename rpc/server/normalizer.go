package server

import (
	"github.com/skaiser/dgate/lib/provider"
)

// Normalize converts a provider result into a plain, serializer-safe
// representation. Records are flattened through their capability interface
// (attribute extraction for relational records, JSON projection for
// document records), lists are normalized element-wise, and plain values
// pass through unchanged. The function is idempotent: normalizing an
// already normalized value returns it as-is.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil

	case []provider.IRecord:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out

	default:
		if ex, ok := v.(provider.IAttributeExtractor); ok {
			return ex.ExtractAttributes()
		}
		if pj, ok := v.(provider.IJSONProjector); ok {
			return pj.ProjectJSON()
		}
		return v
	}
}
