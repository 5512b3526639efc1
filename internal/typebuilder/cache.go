// Package typebuilder converts a DWARF type DIE into an unvalued
// typevalue.TypeValueTree, dispatching by entry tag. It is the direct
// generalization of the tag-switch idiom in
// _examples/golang-debug/internal/gocore/dwarf.go's readDWARFTypes,
// retargeted from Go-runtime type reconstruction to a generic
// Structure/Pointer/TaggedUnion/Array/... archetype model.
package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/tracelog"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// Cache memoizes built type trees by .debug_info offset, both on
// success and on failure, so that a type is described identically
// everywhere it appears and so that the Pointer rule can break cycles
// (this repo's caching policy).
type Cache struct {
	entries map[dwarf.Offset]cacheEntry
}

type cacheEntry struct {
	tree *typevalue.TypeValueTree
	err  *tracerr.Error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[dwarf.Offset]cacheEntry)}
}

// Lookup returns a clone of the cached tree for off, if present.
func (c *Cache) Lookup(off dwarf.Offset) (*typevalue.TypeValueTree, *tracerr.Error, bool) {
	e, ok := c.entries[off]
	if !ok {
		return nil, nil, false
	}
	tracelog.Logger().WithField("offset", off).Debug("type cache hit")
	if e.err != nil {
		return nil, e.err, true
	}
	return e.tree.Clone(), nil, true
}

// Store records the built tree (or the error) for off.
func (c *Cache) Store(off dwarf.Offset, tree *typevalue.TypeValueTree, err *tracerr.Error) {
	c.entries[off] = cacheEntry{tree: tree, err: err}
}
