package pgrel

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/lib/provider/schema"
)

// pgRow is a materialized relational record. Attribute values are plain Go
// values as produced by pgx row scanning.
type pgRow struct {
	provider *Provider
	model    schema.Model
	attrs    map[string]any
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (r *pgRow) ModelName() string {
	return r.model.Name
}

func (r *pgRow) Kind() provider.Kind {
	return provider.KindRelational
}

func (r *pgRow) ExtractAttributes() map[string]any {
	copied := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		copied[k] = v
	}
	return copied
}

func (r *pgRow) Invoke(ctx context.Context, method string, args []any) provider.Outcome {
	switch method {
	case "get":
		if len(args) != 1 {
			return provider.Failf("get expects 1 argument (attribute name), got %d", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return provider.Failf("get expects a string attribute name")
		}
		return provider.Immediate(r.attrs[name])
	case "attributes":
		return provider.Immediate(r.ExtractAttributes())
	}

	for _, assoc := range r.model.Associations {
		if assoc.MethodName() == method {
			return r.resolveAssociation(ctx, assoc)
		}
	}

	return provider.Fail(provider.ErrUnknownMethod(fmt.Sprintf("record %s", r.model.Name), method))
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (r *pgRow) resolveAssociation(ctx context.Context, assoc schema.Association) provider.Outcome {
	target, ok := r.provider.schema.Model(assoc.Model)
	if !ok {
		return provider.Failf("association %s references unknown model %q", assoc.Name, assoc.Model)
	}
	table := pgx.Identifier{target.TableName()}.Sanitize()

	switch assoc.Kind {
	case schema.AssocHasMany:
		fk, err := sanitizeColumn(assoc.ForeignKey)
		if err != nil {
			return provider.Fail(err)
		}
		id := r.attrs["id"]
		return provider.Deferred(func() (any, error) {
			rows, err := collectRows(ctx, r.provider, target,
				fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, fk), []any{id})
			if err != nil {
				return nil, err
			}
			records := make([]provider.IRecord, len(rows))
			for i, row := range rows {
				records[i] = row
			}
			return records, nil
		})

	case schema.AssocBelongsTo:
		ref := r.attrs[assoc.ForeignKey]
		if ref == nil {
			return provider.Immediate(nil)
		}
		return provider.Deferred(func() (any, error) {
			rows, err := collectRows(ctx, r.provider, target,
				fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table), []any{ref})
			if err != nil {
				return nil, err
			}
			if len(rows) == 0 {
				return nil, nil
			}
			return provider.IRecord(rows[0]), nil
		})

	default:
		return provider.Failf("association %s has invalid kind %q", assoc.Name, assoc.Kind)
	}
}
