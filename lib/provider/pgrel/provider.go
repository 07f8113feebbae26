package pgrel

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/lib/provider/schema"
)

var Logger = logger.GetLogger("provider")

// Provider is a relational provider backed by PostgreSQL. Every method
// invocation runs its query from a goroutine and hands back a pending
// Outcome, so this provider exercises the asynchronous resolution path of
// the dispatcher for real.
//
// Table and column names are taken from the schema, never from request
// input, so identifiers are not attacker-controlled; values always travel
// as query parameters.
type Provider struct {
	pool   *pgxpool.Pool
	schema *schema.Schema
}

// New creates a provider on an existing connection pool.
func New(pool *pgxpool.Pool, s *schema.Schema) (*Provider, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Provider{pool: pool, schema: s}, nil
}

// Connect dials the database and creates a provider.
func Connect(ctx context.Context, dsn string, s *schema.Schema) (*Provider, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	p, err := New(pool, s)
	if err != nil {
		pool.Close()
		return nil, err
	}
	Logger.Infof("connected to postgres, %d models", len(s.Models))
	return p, nil
}

// Close releases the connection pool.
func (p *Provider) Close() {
	p.pool.Close()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (p *Provider) Kind() provider.Kind {
	return provider.KindRelational
}

func (p *Provider) Model(name string) (provider.IModelHandle, error) {
	m, ok := p.schema.Model(name)
	if !ok {
		return nil, fmt.Errorf("unknown model %q", name)
	}
	return &pgModel{provider: p, model: m}, nil
}

// --------------------------------------------------------------------------
// Model Handle
// --------------------------------------------------------------------------

type pgModel struct {
	provider *Provider
	model    schema.Model
}

func (m *pgModel) Invoke(ctx context.Context, method string, args []any) provider.Outcome {
	table := pgx.Identifier{m.model.TableName()}.Sanitize()

	switch method {
	case "findById":
		if len(args) != 1 {
			return provider.Failf("findById expects 1 argument, got %d", len(args))
		}
		return m.queryOne(ctx, fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table), args[0])

	case "where":
		if len(args) != 2 {
			return provider.Failf("where expects 2 arguments (attribute, value), got %d", len(args))
		}
		attr, ok := args[0].(string)
		if !ok {
			return provider.Failf("where expects a string attribute name")
		}
		column, err := sanitizeColumn(attr)
		if err != nil {
			return provider.Fail(err)
		}
		return m.queryMany(ctx, fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, column), args[1])

	case "all":
		return m.queryMany(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id", table))

	case "first":
		return m.queryOne(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id LIMIT 1", table))

	case "count":
		return provider.Deferred(func() (any, error) {
			var n int64
			err := m.provider.pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n)
			return n, err
		})
	}

	return provider.Fail(provider.ErrUnknownMethod("model "+m.model.Name, method))
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (m *pgModel) queryOne(ctx context.Context, sql string, args ...any) provider.Outcome {
	return provider.Deferred(func() (any, error) {
		rows, err := collectRows(ctx, m.provider, m.model, sql, args)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		return provider.IRecord(rows[0]), nil
	})
}

func (m *pgModel) queryMany(ctx context.Context, sql string, args ...any) provider.Outcome {
	return provider.Deferred(func() (any, error) {
		rows, err := collectRows(ctx, m.provider, m.model, sql, args)
		if err != nil {
			return nil, err
		}
		records := make([]provider.IRecord, len(rows))
		for i, r := range rows {
			records[i] = r
		}
		return records, nil
	})
}

// collectRows runs the query and materializes every row as an attribute map.
func collectRows(ctx context.Context, p *Provider, model schema.Model, sql string, args []any) ([]*pgRow, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		Logger.Debugf("query %s failed: %v", model.Name, err)
		return nil, fmt.Errorf("query %s failed: %w", model.Name, err)
	}
	defer rows.Close()

	var out []*pgRow
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		attrs := make(map[string]any, len(fields))
		for i, f := range fields {
			attrs[f.Name] = values[i]
		}
		out = append(out, &pgRow{provider: p, model: model, attrs: attrs})
	}
	return out, rows.Err()
}

// sanitizeColumn quotes a client-supplied column name for interpolation.
func sanitizeColumn(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty column name")
	}
	return pgx.Identifier{name}.Sanitize(), nil
}
