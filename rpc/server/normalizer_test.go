package server

import (
	"context"
	"reflect"
	"testing"

	"github.com/skaiser/dgate/lib/provider"
)

type stubRecord struct {
	attrs map[string]any
}

func (r *stubRecord) ModelName() string { return "Stub" }

func (r *stubRecord) Kind() provider.Kind { return provider.KindRelational }

func (r *stubRecord) ExtractAttributes() map[string]any { return r.attrs }

func (r *stubRecord) Invoke(_ context.Context, method string, _ []any) provider.Outcome {
	return provider.Fail(provider.ErrUnknownMethod("stub", method))
}

func TestNormalizeFlattensRecords(t *testing.T) {
	rec := &stubRecord{attrs: map[string]any{"id": 1, "name": "Ada"}}

	got := Normalize(rec)
	if !reflect.DeepEqual(got, rec.attrs) {
		t.Errorf("expected %v, got %v", rec.attrs, got)
	}
}

func TestNormalizeListsElementWise(t *testing.T) {
	recs := []provider.IRecord{
		&stubRecord{attrs: map[string]any{"id": 1}},
		&stubRecord{attrs: map[string]any{"id": 2}},
	}

	got, ok := Normalize(recs).([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", Normalize(recs))
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(got))
	}
	if !reflect.DeepEqual(got[1], map[string]any{"id": 2}) {
		t.Errorf("element not normalized: %v", got[1])
	}
}

func TestNormalizePassesPlainValuesThrough(t *testing.T) {
	tests := []any{
		nil,
		42,
		"hello",
		map[string]any{"k": "v"},
		[]any{float64(1), "two"},
	}

	for _, v := range tests {
		got := Normalize(v)
		if !reflect.DeepEqual(got, v) {
			t.Errorf("expected %v to pass through, got %v", v, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rec := &stubRecord{attrs: map[string]any{"id": 1}}

	once := Normalize(rec)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalizing twice changed the value: %v vs %v", once, twice)
	}
}
