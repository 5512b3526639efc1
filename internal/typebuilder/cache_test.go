package typebuilder

import (
	"debug/dwarf"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

func TestCacheMissThenHit(t *testing.T) {
	c := NewCache()
	_, _, ok := c.Lookup(dwarf.Offset(0x10))
	require.False(t, ok)

	tree := typevalue.NewNode("int", typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.BaseType}}, typevalue.BitRange{End: 32})
	c.Store(dwarf.Offset(0x10), tree, nil)

	got, terr, ok := c.Lookup(dwarf.Offset(0x10))
	require.True(t, ok)
	require.Nil(t, terr)
	require.Equal(t, tree.Name, got.Name)
	require.NotSame(t, tree, got, "Lookup must return a clone, not the cached pointer itself")
}

func TestCacheStoresFailures(t *testing.T) {
	c := NewCache()
	want := tracerr.NewTagNotImplemented("DW_TAG_bogus", 0x20)
	c.Store(dwarf.Offset(0x20), nil, want)

	tree, terr, ok := c.Lookup(dwarf.Offset(0x20))
	require.True(t, ok)
	require.Nil(t, tree)
	require.Equal(t, want, terr)
}

func TestCacheShellIsReplacedByCompletedTree(t *testing.T) {
	c := NewCache()
	shell := typevalue.NewNode("Node", typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.Structure}}, typevalue.BitRange{})
	c.Store(dwarf.Offset(0x30), shell, nil)

	cyclic, _, ok := c.Lookup(dwarf.Offset(0x30))
	require.True(t, ok)
	require.Empty(t, cyclic.Children, "a cyclic reference reached mid-build must see the childless shell")

	shell.AddChild(typevalue.NewNode("next", typevalue.VariableType{}, typevalue.BitRange{}))
	c.Store(dwarf.Offset(0x30), shell, nil)

	complete, _, ok := c.Lookup(dwarf.Offset(0x30))
	require.True(t, ok)
	require.Len(t, complete.Children, 1, "a reference reached after the build completes must see the full tree")
}

func TestObjectKind(t *testing.T) {
	require.Equal(t, typevalue.Structure, objectKind(dwarf.TagStructType))
	require.Equal(t, typevalue.Union, objectKind(dwarf.TagUnionType))
	require.Equal(t, typevalue.Class, objectKind(dwarf.TagClassType))
}

func TestToUint64(t *testing.T) {
	v, ok := toUint64(int64(7))
	require.True(t, ok)
	require.Equal(t, uint64(7), v)

	v, ok = toUint64(uint64(9))
	require.True(t, ok)
	require.Equal(t, uint64(9), v)

	_, ok = toUint64("nope")
	require.False(t, ok)
}
