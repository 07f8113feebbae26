package common

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrSignatureMismatch is the protocol-level rejection message for
// malformed messages and requests with an invalid shape. The exact wording
// is part of the wire contract.
var ErrSignatureMismatch = errors.New("Signature does not match.")

// --------------------------------------------------------------------------
// Provider Target Definition
// --------------------------------------------------------------------------

// ProviderTarget selects what a request is dispatched against: one of the
// two backend providers directly, or a record (set) cached by an earlier
// direct call on the same connection.
type ProviderTarget uint8

const (
	TargetUnknown ProviderTarget = iota

	// Direct provider calls - these wipe and repopulate the tenant cache

	TargetRelational
	TargetDocument

	// Cached-record calls - these only read the tenant cache

	TargetCachedRecord
	TargetCachedRecordSet
)

// String returns the string representation of a ProviderTarget.
func (t ProviderTarget) String() string {
	switch t {
	case TargetRelational:
		return "Relational"
	case TargetDocument:
		return "Document"
	case TargetCachedRecord:
		return "CachedRecord"
	case TargetCachedRecordSet:
		return "CachedRecordSet"
	default:
		return "Unknown"
	}
}

// IsDirect reports whether the target is a direct provider call.
func (t ProviderTarget) IsDirect() bool {
	return t == TargetRelational || t == TargetDocument
}

// IsCached reports whether the target is a cached-record call.
func (t ProviderTarget) IsCached() bool {
	return t == TargetCachedRecord || t == TargetCachedRecordSet
}

// MarshalJSON implements the json.Marshaller interface for ProviderTarget.
// This allows ProviderTarget to be serialized as a string in JSON.
func (t ProviderTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for
// ProviderTarget. Unknown names decode to TargetUnknown instead of failing
// so that request validation can reject them with the protocol's
// signature-mismatch error rather than a parse error.
func (t *ProviderTarget) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseProviderTarget(s)
	return nil
}

// ParseProviderTarget converts a wire string to a ProviderTarget.
func ParseProviderTarget(s string) ProviderTarget {
	switch s {
	case "Relational":
		return TargetRelational
	case "Document":
		return TargetDocument
	case "CachedRecord":
		return TargetCachedRecord
	case "CachedRecordSet":
		return TargetCachedRecordSet
	default:
		return TargetUnknown
	}
}

// --------------------------------------------------------------------------
// Params
// --------------------------------------------------------------------------

// Params is the ordered positional-argument list of a request. A non-array
// wire value is normalized to a single-element list.
type Params []any

// UnmarshalJSON implements the json.Unmarshaler interface for Params.
func (p *Params) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []any
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*p = list
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		*p = nil
		return nil
	}
	var single any
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*p = Params{single}
	return nil
}

// --------------------------------------------------------------------------
// Request Message
// --------------------------------------------------------------------------

// Request is a single protocol message from client to server. The provider
// target travels under the field name "db" for historical wire
// compatibility.
type Request struct {
	Target ProviderTarget `json:"db" cbor:"db"`
	Tenant string         `json:"tenant" cbor:"tenant"`
	Model  string         `json:"model" cbor:"model"`
	Method string         `json:"method" cbor:"method"`
	Params Params         `json:"params,omitempty" cbor:"params,omitempty"`
}

// Validate checks the request shape invariant: tenant, model and method
// must be present and the target must be one of the four known values.
// Any violation is a signature mismatch.
func (r *Request) Validate() error {
	if r.Tenant == "" || r.Model == "" || r.Method == "" {
		return ErrSignatureMismatch
	}
	if !r.Target.IsDirect() && !r.Target.IsCached() {
		return ErrSignatureMismatch
	}
	return nil
}

// --------------------------------------------------------------------------
// Response Message
// --------------------------------------------------------------------------

// Response is a single protocol message from server to client: either a
// normalized result payload (which may be nil) or an error message.
type Response struct {
	Result any
	Err    string
}

// NewResultResponse creates a successful response.
func NewResultResponse(result any) *Response {
	return &Response{Result: result}
}

// NewErrorResponse creates an error response from an error.
func NewErrorResponse(err error) *Response {
	return &Response{Err: err.Error()}
}

// Payload returns the value that goes on the wire: the raw result for
// success, or an {"error": msg} object for failure. Responses are not
// wrapped in an envelope; the error object is the only reserved shape.
func (r *Response) Payload() any {
	if r.Err != "" {
		return map[string]any{"error": r.Err}
	}
	return r.Result
}

// ResponseFromPayload reverses Payload on the client side: an object whose
// only entry is a string "error" field is interpreted as an error response,
// anything else as a result.
func ResponseFromPayload(v any) *Response {
	if m, ok := v.(map[string]any); ok && len(m) == 1 {
		if msg, ok := m["error"].(string); ok {
			return &Response{Err: msg}
		}
	}
	return &Response{Result: v}
}
