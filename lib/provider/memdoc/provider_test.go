package memdoc

import (
	"context"
	"reflect"
	"testing"

	"github.com/skaiser/dgate/lib/provider"
)

func testProvider() *Provider {
	p := New()
	p.Seed("notes", []map[string]any{
		{"_id": 1, "title": "first", "tags": []any{"a", "b"}},
		{"_id": 2, "title": "second", "archived": true},
		{"_id": 3, "title": "third", "archived": true},
	})
	return p
}

func invoke(t *testing.T, target provider.IInvokable, method string, args ...any) any {
	t.Helper()
	v, err := target.Invoke(context.Background(), method, args).Await(context.Background())
	if err != nil {
		t.Fatalf("%s failed: %v", method, err)
	}
	return v
}

func TestFindByID(t *testing.T) {
	p := testProvider()
	m, _ := p.Model("notes")

	v := invoke(t, m, "findById", float64(2))
	doc, ok := v.(provider.IRecord)
	if !ok {
		t.Fatalf("expected a record, got %T", v)
	}
	if doc.ModelName() != "notes" || doc.Kind() != provider.KindDocument {
		t.Errorf("unexpected provenance: %s/%s", doc.ModelName(), doc.Kind())
	}
	if title := invoke(t, doc, "get", "title"); title != "second" {
		t.Errorf("title = %v, want second", title)
	}
}

func TestFindFilter(t *testing.T) {
	p := testProvider()
	m, _ := p.Model("notes")

	v := invoke(t, m, "find", map[string]any{"archived": true})
	set, ok := v.([]provider.IRecord)
	if !ok {
		t.Fatalf("expected a record set, got %T", v)
	}
	if len(set) != 2 {
		t.Errorf("find matched %d docs, want 2", len(set))
	}
}

func TestFindMatchesFilterSuperset(t *testing.T) {
	p := testProvider()
	m, _ := p.Model("notes")

	tests := []struct {
		name   string
		filter map[string]any
		want   int
	}{
		{"multi-key filter", map[string]any{"_id": float64(2), "archived": true}, 1},
		{"missing field matches nothing", map[string]any{"author": "ada"}, 0},
		{"numeric coercion", map[string]any{"_id": float64(1)}, 1},
		{"empty filter matches all", map[string]any{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := invoke(t, m, "find", tt.filter)
			set, ok := v.([]provider.IRecord)
			if !ok {
				t.Fatalf("expected a record set, got %T", v)
			}
			if len(set) != tt.want {
				t.Errorf("find matched %d docs, want %d", len(set), tt.want)
			}
		})
	}
}

func TestProjection(t *testing.T) {
	p := testProvider()
	m, _ := p.Model("notes")
	doc := invoke(t, m, "findById", float64(1)).(provider.IRecord)

	full := doc.(provider.IJSONProjector).ProjectJSON()
	if full["title"] != "first" {
		t.Errorf("ProjectJSON missing title: %v", full)
	}

	partial := invoke(t, doc, "project", "title")
	want := map[string]any{"title": "first"}
	if !reflect.DeepEqual(partial, want) {
		t.Errorf("project = %v, want %v", partial, want)
	}
}

func TestInsertAssignsID(t *testing.T) {
	p := New()
	m, _ := p.Model("events")

	v := invoke(t, m, "insert", map[string]any{"kind": "login"})
	doc := v.(provider.IRecord)
	if id := invoke(t, doc, "get", "_id"); id == nil {
		t.Error("insert did not assign an _id")
	}
	if n := invoke(t, m, "count"); n != 1 {
		t.Errorf("count = %v, want 1", n)
	}
}

func TestCollectionsSpringIntoExistence(t *testing.T) {
	p := New()
	m, err := p.Model("fresh")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if n := invoke(t, m, "count"); n != 0 {
		t.Errorf("count on fresh collection = %v, want 0", n)
	}
}

func TestUnknownMethod(t *testing.T) {
	p := testProvider()
	m, _ := p.Model("notes")
	if _, err := m.Invoke(context.Background(), "aggregate", nil).Await(context.Background()); err == nil {
		t.Fatal("expected error for unknown collection method")
	}
}
