package typebuilder

import (
	"debug/dwarf"
	"fmt"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildArray builds the element type once, then clones it length times,
// one clone per element, each shifted by i*element_bits: bit_range
// spans 0..(element bit size * length), one child per element sharing
// the element's type. Length comes from the
// DW_TAG_subrange_type child's DW_AT_count, or DW_AT_upper_bound+1 when
// only the inclusive upper bound is recorded.
func buildArray(cache *Cache, r *dwarf.Reader, e *dwarf.Entry, off dwarf.Offset) (*typevalue.TypeValueTree, *tracerr.Error) {
	elemOff, terr := dwarfx.EntryTypeOffset(e)
	if terr != nil {
		return nil, terr
	}
	elem, terr := Build(cache, r, elemOff)
	if terr != nil {
		return nil, terr
	}

	kids, terr := dwarfx.Children(r, off)
	if terr != nil {
		return nil, terr
	}
	var length uint64
	found := false
	for _, k := range kids {
		if k.Tag != dwarf.TagSubrangeType {
			continue
		}
		if f := k.AttrField(dwarf.AttrCount); f != nil {
			if v, ok := toUint64(f.Val); ok {
				length = v
				found = true
			}
		} else if f := k.AttrField(dwarf.AttrUpperBound); f != nil {
			if v, ok := toUint64(f.Val); ok {
				length = v + 1
				found = true
			}
		}
	}
	if !found {
		return nil, tracerr.NewExpectedChildNotPresent("array_type subrange_type")
	}

	name := dwarfx.OptionalString(e, dwarf.AttrName)
	elemBits := elem.BitRange.Len()
	vt := typevalue.VariableType{Name: name, Archetype: typevalue.Archetype{Kind: typevalue.Array}}
	tree := typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: elemBits * length})
	for i := uint64(0); i < length; i++ {
		child := elem.Clone()
		child.Rename(fmt.Sprintf("[%d]", i))
		child.ShiftBitRange(i * elemBits)
		tree.AddChild(child)
	}
	return tree, nil
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case int64:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}
