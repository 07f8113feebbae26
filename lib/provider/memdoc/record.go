package memdoc

import (
	"context"

	"github.com/skaiser/dgate/lib/provider"
)

// Document is a single document record.
type Document struct {
	collection *collection
	fields     map[string]any
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (d *Document) ModelName() string {
	return d.collection.name
}

func (d *Document) Kind() provider.Kind {
	return provider.KindDocument
}

func (d *Document) ProjectJSON() map[string]any {
	d.collection.mu.RLock()
	defer d.collection.mu.RUnlock()
	copied := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		copied[k] = v
	}
	return copied
}

func (d *Document) Invoke(_ context.Context, method string, args []any) provider.Outcome {
	switch method {
	case "get":
		if len(args) != 1 {
			return provider.Failf("get expects 1 argument (field name), got %d", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return provider.Failf("get expects a string field name")
		}
		d.collection.mu.RLock()
		defer d.collection.mu.RUnlock()
		return provider.Immediate(d.fields[name])

	case "set":
		if len(args) != 2 {
			return provider.Failf("set expects 2 arguments (field, value), got %d", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return provider.Failf("set expects a string field name")
		}
		d.collection.mu.Lock()
		defer d.collection.mu.Unlock()
		d.fields[name] = args[1]
		return provider.Immediate(nil)

	case "project":
		// project(field...) keeps only the named fields
		d.collection.mu.RLock()
		defer d.collection.mu.RUnlock()
		out := make(map[string]any, len(args))
		for _, a := range args {
			name, ok := a.(string)
			if !ok {
				return provider.Failf("project expects string field names")
			}
			if v, exists := d.fields[name]; exists {
				out[name] = v
			}
		}
		return provider.Immediate(out)
	}

	return provider.Fail(provider.ErrUnknownMethod("document in "+d.collection.name, method))
}

// matches reports whether the document's fields are a superset of the
// filter. The caller must hold the collection lock.
func (d *Document) matches(filter map[string]any) bool {
	for k, want := range filter {
		got, ok := d.fields[k]
		if !ok || !valueEqual(got, want) {
			return false
		}
	}
	return true
}
