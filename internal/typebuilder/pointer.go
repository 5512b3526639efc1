package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildPointer records the pointee's type offset and eagerly builds its
// (unvalued) shape as a "pointee" child, so the variable reader only has
// to fill in values once it has followed the pointer's address into
// device memory. Pointer width defaults to 4 bytes, the
// only word size the target platform this repo implements uses.
func buildPointer(cache *Cache, r *dwarf.Reader, e *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	pointeeOff, terr := dwarfx.EntryTypeOffset(e)
	if terr != nil {
		return nil, terr
	}
	name := dwarfx.OptionalString(e, dwarf.AttrName)
	byteSize := dwarfx.OptionalUdata(e, dwarf.AttrByteSize, 4)

	vt := typevalue.VariableType{
		Name:      name,
		Archetype: typevalue.Archetype{Kind: typevalue.Pointer, PointeeOffset: pointeeOff},
	}
	tree := typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: byteSize * 8})

	pointee, perr := Build(cache, r, pointeeOff)
	if perr == nil && pointee != nil {
		tree.AddChild(pointee.Rename("pointee"))
	}
	return tree, nil
}
