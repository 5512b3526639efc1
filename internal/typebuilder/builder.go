package typebuilder

import (
	"debug/dwarf"
	"fmt"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// Build converts the type DIE at off into an unvalued TypeValueTree,
// memoizing the result (success or failure) in cache under off. r must
// belong to the same dwarf.Data the offset was obtained from.
//
// Composite builders (buildObject) install a childless shell into cache
// before recursing into their own members, so that a pointer member
// whose pointee is the enclosing composite itself (a linked structure)
// terminates on the shell instead of recursing forever; the shell is
// silently replaced by the complete tree once built, so any reference
// reached after completion sees the full tree.
func Build(cache *Cache, r *dwarf.Reader, off dwarf.Offset) (*typevalue.TypeValueTree, *tracerr.Error) {
	if tree, terr, ok := cache.Lookup(off); ok {
		return tree, terr
	}

	entry, terr := dwarfx.EntryAt(r, off)
	if terr != nil {
		cache.Store(off, nil, terr)
		return nil, terr
	}
	if entry == nil {
		terr = tracerr.NewDebugParseError(fmt.Errorf("no entry at offset %#x", off))
		cache.Store(off, nil, terr)
		return nil, terr
	}

	var tree *typevalue.TypeValueTree
	switch entry.Tag {
	case dwarf.TagBaseType:
		tree, terr = buildBaseType(entry)
	case dwarf.TagPointerType:
		tree, terr = buildPointer(cache, r, entry)
	case dwarf.TagArrayType:
		tree, terr = buildArray(cache, r, entry, off)
	case dwarf.TagTypedef:
		tree, terr = buildTypedef(cache, r, entry)
	case dwarf.TagConstType:
		tree, terr = buildWrapper(cache, r, entry, true, false)
	case dwarf.TagVolatileType:
		tree, terr = buildWrapper(cache, r, entry, false, true)
	case dwarf.TagEnumerationType:
		tree, terr = buildEnumeration(r, entry, off)
	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType:
		tree, terr = buildObject(cache, r, entry, off)
	case dwarf.TagSubroutineType:
		tree, terr = buildSubroutine(entry)
	default:
		terr = tracerr.NewTagNotImplemented(entry.Tag.String(), uint64(off))
	}

	cache.Store(off, tree, terr)
	return tree.Clone(), terr
}
