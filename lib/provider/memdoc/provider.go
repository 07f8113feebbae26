package memdoc

import (
	"context"
	"fmt"
	"sync"

	"github.com/skaiser/dgate/lib/provider"
)

// Provider is an in-memory document-style provider. Each model is a
// collection of free-form documents addressed by an "_id" field.
type Provider struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// New creates an empty provider. Collections spring into existence on
// first access, mirroring how document stores behave.
func New() *Provider {
	return &Provider{collections: make(map[string]*collection)}
}

// Seed inserts documents into a collection.
func (p *Provider) Seed(model string, docs []map[string]any) {
	c := p.collection(model)
	for _, fields := range docs {
		c.insert(fields)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider/interface.go)
// --------------------------------------------------------------------------

func (p *Provider) Kind() provider.Kind {
	return provider.KindDocument
}

func (p *Provider) Model(name string) (provider.IModelHandle, error) {
	if name == "" {
		return nil, fmt.Errorf("empty collection name")
	}
	return p.collection(name), nil
}

func (p *Provider) collection(name string) *collection {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.collections[name]
	if !ok {
		c = &collection{name: name}
		p.collections[name] = c
	}
	return c
}

// --------------------------------------------------------------------------
// Collection (model handle)
// --------------------------------------------------------------------------

type collection struct {
	name   string
	mu     sync.RWMutex
	docs   []*Document
	nextID int64
}

var collectionMethods = map[string]func(c *collection, args []any) (any, error){
	"findById": (*collection).findByID,
	"find":     (*collection).find,
	"all":      (*collection).all,
	"first":    (*collection).first,
	"count":    (*collection).count,
	"insert":   (*collection).insertMethod,
}

func (c *collection) Invoke(_ context.Context, method string, args []any) provider.Outcome {
	fn, ok := collectionMethods[method]
	if !ok {
		return provider.Fail(provider.ErrUnknownMethod("collection "+c.name, method))
	}
	v, err := fn(c, args)
	if err != nil {
		return provider.Fail(err)
	}
	return provider.Immediate(v)
}

func (c *collection) findByID(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("findById expects 1 argument, got %d", len(args))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.docs {
		if valueEqual(d.fields["_id"], args[0]) {
			return provider.IRecord(d), nil
		}
	}
	return nil, nil
}

// find matches documents whose fields are a superset of the filter document.
func (c *collection) find(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("find expects 1 argument (filter document), got %d", len(args))
	}
	filter, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("find expects a filter document")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	matches := make([]provider.IRecord, 0)
	for _, d := range c.docs {
		if d.matches(filter) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (c *collection) all(_ []any) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records := make([]provider.IRecord, len(c.docs))
	for i, d := range c.docs {
		records[i] = d
	}
	return records, nil
}

func (c *collection) first(_ []any) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.docs) == 0 {
		return nil, nil
	}
	return provider.IRecord(c.docs[0]), nil
}

func (c *collection) count(_ []any) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs), nil
}

func (c *collection) insertMethod(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("insert expects 1 argument (document), got %d", len(args))
	}
	fields, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("insert expects a document")
	}
	return provider.IRecord(c.insert(fields)), nil
}

func (c *collection) insert(fields map[string]any) *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		copied[k] = v
	}
	if _, ok := copied["_id"]; !ok {
		c.nextID++
		copied["_id"] = c.nextID
	}
	doc := &Document{collection: c, fields: copied}
	c.docs = append(c.docs, doc)
	return doc
}

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
