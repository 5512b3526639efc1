package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildBaseType records name, DW_AT_encoding, and DW_AT_byte_size,
// spanning the node's bit range over the whole base type:
// bit_range = 0..byte_size*8.
func buildBaseType(e *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	name, terr := dwarfx.EntryName(e)
	if terr != nil {
		return nil, terr
	}
	encoding, terr := dwarfx.RequiredSdata(e, dwarf.AttrEncoding)
	if terr != nil {
		return nil, terr
	}
	byteSize, terr := dwarfx.RequiredUdata(e, dwarf.AttrByteSize)
	if terr != nil {
		return nil, terr
	}
	vt := typevalue.VariableType{
		Name:      name,
		Archetype: typevalue.Archetype{Kind: typevalue.BaseType, Encoding: encoding},
	}
	return typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: byteSize * 8}), nil
}
