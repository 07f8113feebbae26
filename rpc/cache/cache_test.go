package cache

import (
	"context"
	"testing"

	"github.com/skaiser/dgate/lib/provider"
)

// fakeRecord implements provider.IRecord with a fixed model name.
type fakeRecord struct {
	name string
}

func (r *fakeRecord) ModelName() string   { return r.name }
func (r *fakeRecord) Kind() provider.Kind { return provider.KindRelational }
func (r *fakeRecord) Invoke(_ context.Context, method string, _ []any) provider.Outcome {
	return provider.Fail(provider.ErrUnknownMethod(r.name, method))
}

func TestPutGetSingle(t *testing.T) {
	c := New()
	c.Init("t1")

	rec := &fakeRecord{name: "Student"}
	c.PutSingle("t1", "student", rec)

	got, ok := c.GetSingle("t1", "student")
	if !ok || got != rec {
		t.Fatalf("GetSingle = %v, %v", got, ok)
	}

	if _, ok := c.GetSingle("t1", "parent"); ok {
		t.Error("unexpected hit for unknown model name")
	}
	if _, ok := c.GetSingle("t2", "student"); ok {
		t.Error("unexpected hit for unknown tenant")
	}
}

func TestPutGetSet(t *testing.T) {
	c := New()
	c.Init("t1")

	records := []any{&fakeRecord{name: "Parent"}, &fakeRecord{name: "Parent"}}
	c.PutSet("t1", "parent", records)

	got, ok := c.GetSet("t1", "parent")
	if !ok || len(got) != 2 {
		t.Fatalf("GetSet = %v, %v", got, ok)
	}

	// single and set slots are independent
	if _, ok := c.GetSingle("t1", "parent"); ok {
		t.Error("set entry leaked into the single slot")
	}
}

func TestInitWipesTenant(t *testing.T) {
	c := New()
	c.Init("t1")
	c.PutSingle("t1", "student", &fakeRecord{name: "Student"})
	c.PutSet("t1", "parent", []any{&fakeRecord{name: "Parent"}})

	c.Init("t1")

	if _, ok := c.GetSingle("t1", "student"); ok {
		t.Error("single entry survived Init")
	}
	if _, ok := c.GetSet("t1", "parent"); ok {
		t.Error("set entry survived Init")
	}
}

func TestInitIsPerTenant(t *testing.T) {
	c := New()
	c.Init("t1")
	c.Init("t2")
	c.PutSingle("t1", "student", &fakeRecord{name: "Student"})

	c.Init("t2")

	if _, ok := c.GetSingle("t1", "student"); !ok {
		t.Error("re-initializing t2 wiped t1")
	}
}

func TestPutWithoutInitIsNoop(t *testing.T) {
	c := New()
	c.PutSingle("t1", "student", &fakeRecord{name: "Student"})
	if _, ok := c.GetSingle("t1", "student"); ok {
		t.Error("put without init stored an entry")
	}
}

func TestOverwrite(t *testing.T) {
	c := New()
	c.Init("t1")

	first := &fakeRecord{name: "Student"}
	second := &fakeRecord{name: "Student"}
	c.PutSingle("t1", "student", first)
	c.PutSingle("t1", "student", second)

	got, _ := c.GetSingle("t1", "student")
	if got != second {
		t.Error("second put did not overwrite the first")
	}
}

func TestDeriveModelName(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"record", &fakeRecord{name: "Student"}, "student"},
		{"already lower", &fakeRecord{name: "notes"}, "notes"},
		{"empty model name", &fakeRecord{name: ""}, RawModelName},
		{"plain map", map[string]any{"id": 1}, RawModelName},
		{"scalar", 42, RawModelName},
		{"nil", nil, RawModelName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveModelName(tt.v); got != tt.want {
				t.Errorf("DeriveModelName = %q, want %q", got, tt.want)
			}
		})
	}
}
