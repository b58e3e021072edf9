package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleTable = `
[roles.far_plane]
kind = "slot"
type = "float32"
candidates = ["field_9999_z", "farPlaneDistance"]

[roles.vertex_color_multiplier]
type = "[]float32"
nth = 0
`

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]byte(sampleTable))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d roles, want 2", len(table))
	}
	spec := table["vertex_color_multiplier"]
	if spec.Nth == nil || *spec.Nth != 0 {
		t.Errorf("nth = %v, want 0", spec.Nth)
	}
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[roles.far_plane\nkind = slot"},
		{"unknown key", "[roles.far_plane]\nnames = [\"a\"]"},
		{"bad kind", "[roles.far_plane]\nkind = \"register\""},
		{"negative nth", "[roles.far_plane]\nnth = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.doc))
			if !errors.Is(err, ErrBadTable) {
				t.Errorf("err = %v, want ErrBadTable", err)
			}
		})
	}
}

func TestTableApplyMergesCandidates(t *testing.T) {
	table, err := ParseTable([]byte(sampleTable))
	if err != nil {
		t.Fatal(err)
	}

	role := table.Apply(farPlaneRole())
	want := []string{"field_9999_z", "farPlaneDistance", "field_78530_q", "field_78526_r"}
	if !reflect.DeepEqual(role.Candidates, want) {
		t.Errorf("candidates = %v, want %v", role.Candidates, want)
	}

	unknown := Role{Name: "not_in_table", Candidates: []string{"a"}}
	if got := table.Apply(unknown); !reflect.DeepEqual(got.Candidates, unknown.Candidates) {
		t.Error("role without table entry was modified")
	}
}

func TestTableApplyNthAndTypeName(t *testing.T) {
	table, err := ParseTable([]byte(sampleTable))
	if err != nil {
		t.Fatal(err)
	}

	// Compiled role has no Type; the table narrows it by type name
	role := table.Apply(Role{Name: "vertex_color_multiplier", Nth: 1})
	h := Of[aoFaceRenamed](New(), role)
	if h.Member().Name != "x" {
		t.Errorf("member = %s, want x (nth overridden to 0)", h.Member().Name)
	}
}

func TestTableApplyRejectsConflicts(t *testing.T) {
	table := Table{
		"far_plane": {Kind: "entry", Candidates: []string{"zzz"}},
		"lightmap":  {Type: "int", Candidates: []string{"zzz"}},
	}

	if got := table.Apply(farPlaneRole()); got.Candidates[0] == "zzz" {
		t.Error("kind conflict should leave the role unchanged")
	}
	lightmap := Role{Name: "lightmap", Type: reflect.TypeFor[*texture]()}
	if got := table.Apply(lightmap); len(got.Candidates) != 0 {
		t.Error("type conflict should leave the role unchanged")
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if _, ok := table["far_plane"]; !ok {
		t.Error("far_plane missing")
	}

	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
