package provider

import (
	"context"
	"fmt"
)

// --------------------------------------------------------------------------
// Provider Kind
// --------------------------------------------------------------------------

// Kind identifies which family of backend a provider (or a record it
// produced) belongs to. Records that cannot be traced to a provider are
// tagged KindRaw.
type Kind uint8

const (
	KindRaw Kind = iota
	KindRelational
	KindDocument
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindRelational:
		return "relational"
	case KindDocument:
		return "document"
	default:
		return "raw"
	}
}

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// IProvider is the generic interface for a backend data provider.
// A provider resolves model names to handles; all further interaction
// happens through the handle's method registry.
type IProvider interface {
	// Kind returns the provider family (relational, document)
	Kind() Kind
	// Model resolves a model name to a handle.
	// It returns an error if the provider does not know the model.
	Model(name string) (IModelHandle, error)
}

// IInvokable is implemented by anything that exposes dynamically named
// methods with positional arguments: model handles and records alike.
// Method dispatch goes through an explicit registry, never reflection.
type IInvokable interface {
	// Invoke calls the named method with positional arguments.
	// Unknown methods must be reported via a failed Outcome, not a panic.
	Invoke(ctx context.Context, method string, args []any) Outcome
}

// IModelHandle is the handle returned by IProvider.Model.
type IModelHandle interface {
	IInvokable
}

// IRecord is a single result record with provenance. The record's model
// name and kind together determine the derived cache key under which the
// record is stored (see the rpc/cache package).
type IRecord interface {
	IInvokable
	// ModelName returns the declared type name of the record (e.g. "Student")
	ModelName() string
	// Kind returns the provider family that produced the record
	Kind() Kind
}

// IAttributeExtractor is the capability of relational-style records to
// extract a plain attribute mapping.
type IAttributeExtractor interface {
	ExtractAttributes() map[string]any
}

// IJSONProjector is the capability of document-style records to project
// themselves to a plain JSON-safe mapping.
type IJSONProjector interface {
	ProjectJSON() map[string]any
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ErrUnknownMethod creates the error every provider implementation returns
// for a method name that is not in its registry.
func ErrUnknownMethod(target, method string) error {
	return fmt.Errorf("%s has no method %q", target, method)
}
