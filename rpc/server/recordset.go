package server

import (
	"context"
	"fmt"

	"github.com/skaiser/dgate/lib/provider"
)

// recordSet is the invokable view over a cached record set. It exposes the
// set-level methods reachable through the CachedRecordSet target; individual
// elements keep their own methods and are reached via "at", "first" or
// "last".
type recordSet struct {
	items []any
}

func newRecordSet(items []any) *recordSet {
	return &recordSet{items: items}
}

// method registry, one entry per wire-callable method
var recordSetMethods = map[string]func(s *recordSet, args []any) (any, error){
	"length": (*recordSet).length,
	"size":   (*recordSet).length,
	"at":     (*recordSet).at,
	"first":  (*recordSet).first,
	"last":   (*recordSet).last,
}

// --------------------------------------------------------------------------
// Interface Methods (docu see provider.IInvokable)
// --------------------------------------------------------------------------

func (s *recordSet) Invoke(_ context.Context, method string, args []any) provider.Outcome {
	fn, ok := recordSetMethods[method]
	if !ok {
		return provider.Fail(provider.ErrUnknownMethod("record set", method))
	}
	v, err := fn(s, args)
	if err != nil {
		return provider.Fail(err)
	}
	return provider.Immediate(v)
}

// --------------------------------------------------------------------------
// Methods
// --------------------------------------------------------------------------

func (s *recordSet) length(_ []any) (any, error) {
	return len(s.items), nil
}

func (s *recordSet) at(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("at expects exactly one argument")
	}
	idx, ok := toIndex(args[0])
	if !ok {
		return nil, fmt.Errorf("at expects a numeric index, got %T", args[0])
	}
	if idx < 0 || idx >= len(s.items) {
		return nil, fmt.Errorf("index %d out of range for record set of length %d", idx, len(s.items))
	}
	return s.items[idx], nil
}

func (s *recordSet) first(_ []any) (any, error) {
	if len(s.items) == 0 {
		return nil, nil
	}
	return s.items[0], nil
}

func (s *recordSet) last(_ []any) (any, error) {
	if len(s.items) == 0 {
		return nil, nil
	}
	return s.items[len(s.items)-1], nil
}

// toIndex accepts the numeric types the serializers produce
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
