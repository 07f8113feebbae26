package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Models: []Model{
			{
				Name: "Student",
				Associations: []Association{
					{Name: "parents", Model: "Parent", ForeignKey: "student_id", Kind: AssocHasMany},
				},
			},
			{
				Name: "Parent",
				Associations: []Association{
					{Name: "student", Model: "Student", ForeignKey: "student_id", Kind: AssocBelongsTo},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := testSchema().Validate(); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
}

func TestValidateUnknownTarget(t *testing.T) {
	s := testSchema()
	s.Models[0].Associations[0].Model = "Teacher"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown association target")
	}
}

func TestValidateBadKind(t *testing.T) {
	s := testSchema()
	s.Models[0].Associations[0].Kind = "hasOne"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for invalid association kind")
	}
}

func TestMethodName(t *testing.T) {
	a := Association{Name: "parents"}
	if got := a.MethodName(); got != "getParents" {
		t.Errorf("MethodName() = %q, want getParents", got)
	}
}

func TestTableName(t *testing.T) {
	m := Model{Name: "Student"}
	if got := m.TableName(); got != "students" {
		t.Errorf("TableName() = %q, want students", got)
	}
	m.Table = "pupils"
	if got := m.TableName(); got != "pupils" {
		t.Errorf("TableName() = %q, want pupils", got)
	}
}

func TestLoadFile(t *testing.T) {
	content := `
[[model]]
name = "Student"

  [[model.association]]
  name = "parents"
  model = "Parent"
  foreign_key = "student_id"
  kind = "hasMany"

[[model]]
name = "Parent"
`
	path := filepath.Join(t.TempDir(), "schema.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	m, ok := s.Model("Student")
	if !ok {
		t.Fatal("model Student not found")
	}
	if len(m.Associations) != 1 || m.Associations[0].MethodName() != "getParents" {
		t.Errorf("unexpected associations: %+v", m.Associations)
	}
}
