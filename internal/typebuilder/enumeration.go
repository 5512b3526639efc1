package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildEnumeration records one child per DW_TAG_enumerator, each holding
// its constant value, so the variable reader only has to match the read
// integer against these children's values rather than re-parsing DWARF
// one child per enumerator, carrying its constant value; the matching
// child's name is the enum's display name.
func buildEnumeration(r *dwarf.Reader, e *dwarf.Entry, off dwarf.Offset) (*typevalue.TypeValueTree, *tracerr.Error) {
	name := dwarfx.OptionalString(e, dwarf.AttrName)
	byteSize, terr := dwarfx.RequiredUdata(e, dwarf.AttrByteSize)
	if terr != nil {
		return nil, terr
	}

	kids, terr := dwarfx.Children(r, off)
	if terr != nil {
		return nil, terr
	}

	vt := typevalue.VariableType{Name: name, Archetype: typevalue.Archetype{Kind: typevalue.Enumeration}}
	tree := typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: byteSize * 8})
	for _, k := range kids {
		if k.Tag != dwarf.TagEnumerator {
			continue
		}
		ename, terr := dwarfx.EntryName(k)
		if terr != nil {
			return nil, terr
		}
		cv, terr := dwarfx.RequiredSdata(k, dwarf.AttrConstValue)
		if terr != nil {
			return nil, terr
		}
		evt := typevalue.VariableType{Name: ename, Archetype: typevalue.Archetype{Kind: typevalue.Enumerator}}
		enode := typevalue.NewNode(ename, evt, typevalue.BitRange{Start: 0, End: byteSize * 8})
		enode.SetValue(typevalue.IntFromInt64(cv))
		tree.AddChild(enode)
	}
	return tree, nil
}
