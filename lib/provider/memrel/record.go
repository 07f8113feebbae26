package memrel

import (
	"context"
	"fmt"

	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/lib/provider/schema"
)

// Row is a single relational record. It keeps a reference to its table so
// association getters can resolve against the live data set.
type Row struct {
	table *table
	attrs map[string]any
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (r *Row) ModelName() string {
	return r.table.model.Name
}

func (r *Row) Kind() provider.Kind {
	return provider.KindRelational
}

func (r *Row) ExtractAttributes() map[string]any {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	copied := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		copied[k] = v
	}
	return copied
}

func (r *Row) Invoke(_ context.Context, method string, args []any) provider.Outcome {
	switch method {
	case "get":
		if len(args) != 1 {
			return provider.Failf("get expects 1 argument (attribute name), got %d", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return provider.Failf("get expects a string attribute name")
		}
		r.table.mu.RLock()
		defer r.table.mu.RUnlock()
		return provider.Immediate(r.attrs[name])
	case "set":
		if len(args) != 2 {
			return provider.Failf("set expects 2 arguments (attribute, value), got %d", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return provider.Failf("set expects a string attribute name")
		}
		r.table.mu.Lock()
		defer r.table.mu.Unlock()
		r.attrs[name] = args[1]
		return provider.Immediate(nil)
	case "attributes":
		return provider.Immediate(r.ExtractAttributes())
	}

	// association getters generated from the schema
	for _, assoc := range r.table.model.Associations {
		if assoc.MethodName() == method {
			v, err := r.resolveAssociation(assoc)
			if err != nil {
				return provider.Fail(err)
			}
			return provider.Immediate(v)
		}
	}

	return provider.Fail(provider.ErrUnknownMethod(fmt.Sprintf("record %s", r.ModelName()), method))
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (r *Row) resolveAssociation(assoc schema.Association) (any, error) {
	target, ok := r.table.provider.tables[assoc.Model]
	if !ok {
		return nil, fmt.Errorf("association %s references unknown model %q", assoc.Name, assoc.Model)
	}

	switch assoc.Kind {
	case schema.AssocHasMany:
		// foreign key lives on the target rows
		r.table.mu.RLock()
		id := r.attrs["id"]
		r.table.mu.RUnlock()
		return target.where([]any{assoc.ForeignKey, id})

	case schema.AssocBelongsTo:
		// foreign key lives on this row
		r.table.mu.RLock()
		ref := r.attrs[assoc.ForeignKey]
		r.table.mu.RUnlock()
		if ref == nil {
			return nil, nil
		}
		return target.findByID([]any{ref})

	default:
		return nil, fmt.Errorf("association %s has invalid kind %q", assoc.Name, assoc.Kind)
	}
}
