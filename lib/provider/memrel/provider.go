package memrel

import (
	"context"
	"fmt"
	"sync"

	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/lib/provider/schema"
)

// Provider is an in-memory relational-style provider. Tables are plain row
// slices guarded by a mutex, so a single instance can be shared by all
// connections of a server.
type Provider struct {
	schema *schema.Schema
	tables map[string]*table
}

// New creates a provider with one empty table per schema model.
func New(s *schema.Schema) (*Provider, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p := &Provider{
		schema: s,
		tables: make(map[string]*table, len(s.Models)),
	}
	for _, m := range s.Models {
		p.tables[m.Name] = &table{provider: p, model: m}
	}
	return p, nil
}

// Seed inserts rows into a model's table. Rows without an "id" attribute
// get an auto-incremented one.
func (p *Provider) Seed(model string, rows []map[string]any) error {
	t, ok := p.tables[model]
	if !ok {
		return fmt.Errorf("unknown model %q", model)
	}
	for _, attrs := range rows {
		t.insert(attrs)
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (p *Provider) Kind() provider.Kind {
	return provider.KindRelational
}

func (p *Provider) Model(name string) (provider.IModelHandle, error) {
	t, ok := p.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", name)
	}
	return t, nil
}

// --------------------------------------------------------------------------
// Table (model handle)
// --------------------------------------------------------------------------

type table struct {
	provider *Provider
	model    schema.Model
	mu       sync.RWMutex
	rows     []*Row
	nextID   int64
}

// modelMethods is the method registry for model handles.
var modelMethods = map[string]func(t *table, args []any) (any, error){
	"findById": (*table).findByID,
	"where":    (*table).where,
	"all":      (*table).all,
	"first":    (*table).first,
	"count":    (*table).count,
	"insert":   (*table).insertMethod,
}

func (t *table) Invoke(_ context.Context, method string, args []any) provider.Outcome {
	fn, ok := modelMethods[method]
	if !ok {
		return provider.Fail(provider.ErrUnknownMethod("model "+t.model.Name, method))
	}
	v, err := fn(t, args)
	if err != nil {
		return provider.Fail(err)
	}
	return provider.Immediate(v)
}

func (t *table) findByID(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("findById expects 1 argument, got %d", len(args))
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if valueEqual(r.attrs["id"], args[0]) {
			return provider.IRecord(r), nil
		}
	}
	return nil, nil
}

func (t *table) where(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("where expects 2 arguments (attribute, value), got %d", len(args))
	}
	attr, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("where expects a string attribute name")
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	matches := make([]provider.IRecord, 0)
	for _, r := range t.rows {
		if valueEqual(r.attrs[attr], args[1]) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (t *table) all(_ []any) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	records := make([]provider.IRecord, len(t.rows))
	for i, r := range t.rows {
		records[i] = r
	}
	return records, nil
}

func (t *table) first(_ []any) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.rows) == 0 {
		return nil, nil
	}
	return provider.IRecord(t.rows[0]), nil
}

func (t *table) count(_ []any) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows), nil
}

func (t *table) insertMethod(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("insert expects 1 argument (attribute map), got %d", len(args))
	}
	attrs, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("insert expects an attribute map")
	}
	return provider.IRecord(t.insert(attrs)), nil
}

// insert adds a row, assigning an id if the attributes carry none.
func (t *table) insert(attrs map[string]any) *Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		copied[k] = v
	}
	if _, ok := copied["id"]; !ok {
		t.nextID++
		copied["id"] = t.nextID
	}
	row := &Row{table: t, attrs: copied}
	t.rows = append(t.rows, row)
	return row
}

// valueEqual compares attribute values with numeric tolerance: JSON decodes
// all numbers to float64 while seeded rows may hold ints.
func valueEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
