package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildTypedef wraps the aliased type in a named node with a single
// "target" child, so a typedef chain is visible in the
// tree rather than silently collapsed the way const/volatile are.
func buildTypedef(cache *Cache, r *dwarf.Reader, e *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	targetOff, terr := dwarfx.EntryTypeOffset(e)
	if terr != nil {
		return nil, terr
	}
	target, terr := Build(cache, r, targetOff)
	if terr != nil {
		return nil, terr
	}
	name, terr := dwarfx.EntryName(e)
	if terr != nil {
		return nil, terr
	}

	vt := typevalue.VariableType{Name: name, Archetype: typevalue.Archetype{Kind: typevalue.Typedef}}
	tree := typevalue.NewNode(name, vt, typevalue.BitRange{Start: 0, End: target.BitRange.Len()})
	tree.AddChild(target.Rename("target"))
	return tree, nil
}

// buildWrapper builds the underlying type and tags it with the
// const/volatile flag(s) observed, collapsing the wrapper DIE itself
// rather than adding a tree level. Flags accumulate through a chain of
// wrappers (const of volatile of T keeps both flags on T's node).
func buildWrapper(cache *Cache, r *dwarf.Reader, e *dwarf.Entry, isConst, isVolatile bool) (*typevalue.TypeValueTree, *tracerr.Error) {
	targetOff, terr := dwarfx.EntryTypeOffset(e)
	if terr != nil {
		return nil, terr
	}
	target, terr := Build(cache, r, targetOff)
	if terr != nil {
		return nil, terr
	}
	target.VariableType.Const = target.VariableType.Const || isConst
	target.VariableType.Volatile = target.VariableType.Volatile || isVolatile
	return target, nil
}
