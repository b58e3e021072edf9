package resolve

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/hostpatch/core"
)

// ErrBadTable is wrapped by every binding-table decode or validation error
var ErrBadTable = errors.New("invalid binding table")

// RoleSpec is the binding-table entry for one role. Candidates are tried
// before the compiled-in ones; Kind and Type, when present, must agree with
// the compiled role because typed accessors depend on them
type RoleSpec struct {
	Kind       string   `toml:"kind"`
	Type       string   `toml:"type"`
	Candidates []string `toml:"candidates"`
	Nth        *int     `toml:"nth"`
}

// Table maps role names to overrides, letting a new host build be supported
// without recompiling:
//
//	[roles.far_plane]
//	kind = "slot"
//	type = "float32"
//	candidates = ["farPlaneDistance", "field_78530_q"]
//	nth = 0
type Table map[string]RoleSpec

// ParseTable decodes a TOML document holding a [roles] table
func ParseTable(data []byte) (Table, error) {
	var doc struct {
		Roles Table `toml:"roles"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTable, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrBadTable, undecoded[0].String())
	}
	if err := doc.Roles.Validate(); err != nil {
		return nil, err
	}
	return doc.Roles, nil
}

// LoadTable reads and parses a binding-table file
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read binding table: %w", err)
	}
	return ParseTable(data)
}

// Validate checks kinds and positions
func (t Table) Validate() error {
	for name, spec := range t {
		if _, ok := ParseKind(spec.Kind); !ok {
			return fmt.Errorf("%w: role %q: unknown kind %q", ErrBadTable, name, spec.Kind)
		}
		if spec.Nth != nil && *spec.Nth < 0 {
			return fmt.Errorf("%w: role %q: negative nth %d", ErrBadTable, name, *spec.Nth)
		}
	}
	return nil
}

// Apply merges the table entry for role.Name into role. A nil or missing
// entry returns role unchanged
func (t Table) Apply(role Role) Role {
	spec, ok := t[role.Name]
	if !ok {
		return role
	}

	if kind, _ := ParseKind(spec.Kind); spec.Kind != "" && kind != role.Kind {
		core.Logger().Warn("binding table kind ignored",
			"role", role.Name, "table", spec.Kind, "compiled", role.Kind.String())
		return role
	}
	if spec.Type != "" && role.Type != nil && spec.Type != role.Type.String() {
		core.Logger().Warn("binding table type ignored",
			"role", role.Name, "table", spec.Type, "compiled", role.Type.String())
		return role
	}

	merged := make([]string, 0, len(spec.Candidates)+len(role.Candidates))
	seen := make(map[string]bool, cap(merged))
	for _, list := range [][]string{spec.Candidates, role.Candidates} {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				merged = append(merged, name)
			}
		}
	}
	role.Candidates = merged

	if spec.Type != "" && role.Type == nil {
		role.Match = And(role.Match, TypeNamed(spec.Type))
	}
	if spec.Nth != nil {
		role.Nth = *spec.Nth
	}
	return role
}
