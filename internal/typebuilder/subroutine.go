package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildSubroutine records only enough to let a function pointer describe
// its pointee: subroutine_type carries no readable bytes of its own, so
// it has no children and a zero bit range — only the address of a
// function pointer is ever meaningful.
func buildSubroutine(e *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	name := dwarfx.OptionalString(e, dwarf.AttrName)
	vt := typevalue.VariableType{Name: name, Archetype: typevalue.Archetype{Kind: typevalue.Subroutine}}
	return typevalue.NewNode(name, vt, typevalue.BitRange{}), nil
}
