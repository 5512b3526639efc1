package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildObject builds a struct, union, or class: one child per member,
// each shifted to its DW_AT_data_member_loc within the object's own bit
// range. A variant_part child promotes the object to a tagged union and
// is handled by buildVariantPart.
//
// The shell (named, correctly kinded, childless) is cached under off
// before any member is built, so a pointer member whose pointee is the
// enclosing type itself terminates on the shell rather than recursing.
func buildObject(cache *Cache, r *dwarf.Reader, e *dwarf.Entry, off dwarf.Offset) (*typevalue.TypeValueTree, *tracerr.Error) {
	kind := objectKind(e.Tag)
	name := dwarfx.OptionalString(e, dwarf.AttrName)
	byteSize := dwarfx.OptionalUdata(e, dwarf.AttrByteSize, 0)

	vt := typevalue.VariableType{Name: name, Archetype: typevalue.Archetype{Kind: kind}}
	shell := typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: byteSize * 8})
	cache.Store(off, shell, nil)

	kids, terr := dwarfx.Children(r, off)
	if terr != nil {
		return nil, terr
	}
	for _, k := range kids {
		switch k.Tag {
		case dwarf.TagMember:
			child, terr := buildMember(cache, r, k)
			if terr != nil {
				return nil, terr
			}
			shell.AddChild(child)
		case dwarf.TagVariantPart:
			variants, terr := buildVariantPart(cache, r, k)
			if terr != nil {
				return nil, terr
			}
			shell.VariableType.Archetype.Kind = typevalue.TaggedUnion
			shell.AddChild(variants)
		}
	}
	return shell, nil
}

func objectKind(tag dwarf.Tag) typevalue.ArchetypeKind {
	switch tag {
	case dwarf.TagUnionType:
		return typevalue.Union
	case dwarf.TagClassType:
		return typevalue.Class
	default:
		return typevalue.Structure
	}
}

// buildMember builds a single struct/union member's type and positions
// it within the parent's bit range, at DW_AT_data_member_location * 8.
//
// C-style bitfields are not modelled: DW_AT_data_member_location is
// required here rather than defaulted, so a member that instead carries
// DW_AT_data_bit_offset/DW_AT_bit_size (the DWARF shape a bitfield
// takes, typically without a simple constant data_member_location) fails
// to build with a missing-attribute error instead of being silently
// mispositioned. DW_AT_data_member_location can in principle be a
// location expression rather than a plain constant; that shape isn't
// handled either and is rejected the same way.
func buildMember(cache *Cache, r *dwarf.Reader, k *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	name, terr := dwarfx.EntryName(k)
	if terr != nil {
		return nil, terr
	}
	typeOff, terr := dwarfx.EntryTypeOffset(k)
	if terr != nil {
		return nil, terr
	}
	member, terr := Build(cache, r, typeOff)
	if terr != nil {
		return nil, terr
	}

	byteOffset, terr := dwarfx.RequiredUdata(k, dwarf.AttrDataMemberLoc)
	if terr != nil {
		return nil, terr
	}

	member.Rename(name)
	member.ShiftBitRange(byteOffset * 8)
	return member, nil
}
