package memrel

import (
	"context"
	"testing"

	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/lib/provider/schema"
)

func testProvider(t *testing.T) *Provider {
	t.Helper()
	s := &schema.Schema{
		Models: []schema.Model{
			{
				Name: "Student",
				Associations: []schema.Association{
					{Name: "parents", Model: "Parent", ForeignKey: "student_id", Kind: schema.AssocHasMany},
				},
			},
			{
				Name: "Parent",
				Associations: []schema.Association{
					{Name: "student", Model: "Student", ForeignKey: "student_id", Kind: schema.AssocBelongsTo},
				},
			},
		},
	}
	p, err := New(s)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Seed("Student", []map[string]any{
		{"id": 5, "name": "Ada"},
		{"id": 6, "name": "Linus"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := p.Seed("Parent", []map[string]any{
		{"id": 1, "name": "Grace", "student_id": 5},
		{"id": 2, "name": "Alan", "student_id": 5},
		{"id": 3, "name": "Dennis", "student_id": 6},
	}); err != nil {
		t.Fatal(err)
	}
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
	p := testProvider(t)
	m, err := p.Model("Student")
	if err != nil {
		t.Fatal(err)
	}

	// JSON params arrive as float64
	v := invoke(t, m, "findById", float64(5))
	rec, ok := v.(provider.IRecord)
	if !ok {
		t.Fatalf("expected a record, got %T", v)
	}
	if rec.ModelName() != "Student" || rec.Kind() != provider.KindRelational {
		t.Errorf("unexpected provenance: %s/%s", rec.ModelName(), rec.Kind())
	}

	attrs := rec.(provider.IAttributeExtractor).ExtractAttributes()
	if attrs["name"] != "Ada" {
		t.Errorf("attrs = %v, want name Ada", attrs)
	}
}

func TestFindByIDMissing(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Student")
	if v := invoke(t, m, "findById", float64(99)); v != nil {
		t.Errorf("expected nil for missing id, got %v", v)
	}
}

func TestWhereAndCount(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Parent")

	v := invoke(t, m, "where", "student_id", float64(5))
	set, ok := v.([]provider.IRecord)
	if !ok {
		t.Fatalf("expected a record set, got %T", v)
	}
	if len(set) != 2 {
		t.Errorf("where returned %d records, want 2", len(set))
	}

	if n := invoke(t, m, "count"); n != 3 {
		t.Errorf("count = %v, want 3", n)
	}
}

func TestAssociationHasMany(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Student")
	student := invoke(t, m, "findById", float64(5)).(provider.IRecord)

	v := invoke(t, student, "getParents")
	set, ok := v.([]provider.IRecord)
	if !ok {
		t.Fatalf("expected a record set, got %T", v)
	}
	if len(set) != 2 {
		t.Fatalf("getParents returned %d records, want 2", len(set))
	}
	if set[0].ModelName() != "Parent" {
		t.Errorf("association records have model %s, want Parent", set[0].ModelName())
	}
}

func TestAssociationBelongsTo(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Parent")
	parent := invoke(t, m, "findById", float64(3)).(provider.IRecord)

	v := invoke(t, parent, "getStudent")
	rec, ok := v.(provider.IRecord)
	if !ok {
		t.Fatalf("expected a record, got %T", v)
	}
	if name := rec.(provider.IAttributeExtractor).ExtractAttributes()["name"]; name != "Linus" {
		t.Errorf("getStudent name = %v, want Linus", name)
	}
}

func TestInsertAssignsID(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Student")

	v := invoke(t, m, "insert", map[string]any{"name": "Barbara"})
	rec := v.(provider.IRecord)
	if id := rec.(provider.IAttributeExtractor).ExtractAttributes()["id"]; id == nil {
		t.Error("insert did not assign an id")
	}
	if n := invoke(t, m, "count"); n != 3 {
		t.Errorf("count after insert = %v, want 3", n)
	}
}

func TestUnknownMethod(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Student")
	if _, err := m.Invoke(context.Background(), "dropTable", nil).Await(context.Background()); err == nil {
		t.Fatal("expected error for unknown model method")
	}

	student := invoke(t, m, "findById", float64(5)).(provider.IRecord)
	if _, err := student.Invoke(context.Background(), "explode", nil).Await(context.Background()); err == nil {
		t.Fatal("expected error for unknown record method")
	}
}

func TestUnknownModel(t *testing.T) {
	p := testProvider(t)
	if _, err := p.Model("Teacher"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestRecordGetSet(t *testing.T) {
	p := testProvider(t)
	m, _ := p.Model("Student")
	student := invoke(t, m, "findById", float64(5)).(provider.IRecord)

	if name := invoke(t, student, "get", "name"); name != "Ada" {
		t.Errorf("get name = %v, want Ada", name)
	}
	invoke(t, student, "set", "name", "Ada L.")
	if name := invoke(t, student, "get", "name"); name != "Ada L." {
		t.Errorf("get after set = %v, want Ada L.", name)
	}
}
