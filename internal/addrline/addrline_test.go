package addrline

import (
	"debug/dwarf"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPcInRanges(t *testing.T) {
	ranges := [][2]uint64{{0x1000, 0x1010}, {0x2000, 0x2020}}
	require.True(t, pcInRanges(0x1005, ranges))
	require.True(t, pcInRanges(0x2000, ranges))
	require.False(t, pcInRanges(0x2020, ranges))
	require.False(t, pcInRanges(0x0FFF, ranges))
}

func TestLocationForSubprogram(t *testing.T) {
	e := &dwarf.Entry{
		Tag: dwarf.TagSubprogram,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "handle_fault"},
		},
	}
	loc := locationFor(nil, e)
	require.Equal(t, "handle_fault", loc.FunctionName)
	require.False(t, loc.Inline)
}

func TestLocationForInlinedSubroutine(t *testing.T) {
	e := &dwarf.Entry{
		Tag: dwarf.TagInlinedSubroutine,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrName, Val: "helper"},
			{Attr: attrCallLine, Val: int64(42)},
		},
	}
	loc := locationFor(nil, e)
	require.Equal(t, "helper", loc.FunctionName)
	require.True(t, loc.Inline)
	// locationFor never reads its own entry's call-site attributes into
	// Line/File: those describe where e was called *from*, which belongs
	// to the enclosing frame, not e's own. inlineChain applies them to
	// the parent already on the stack instead.
	require.Equal(t, 0, loc.Line)
}

func TestCallSiteReadsLineWithoutLineReader(t *testing.T) {
	e := &dwarf.Entry{
		Tag: dwarf.TagInlinedSubroutine,
		Field: []dwarf.Field{
			{Attr: attrCallLine, Val: int64(17)},
			{Attr: attrCallFile, Val: int64(1)},
		},
	}
	file, line := callSite(nil, e)
	require.Equal(t, 17, line)
	require.Equal(t, "", file, "a nil line reader can't resolve the file-table index, so File stays empty")
}

func TestCallSiteMissingAttributes(t *testing.T) {
	e := &dwarf.Entry{Tag: dwarf.TagInlinedSubroutine}
	file, line := callSite(nil, e)
	require.Equal(t, 0, line)
	require.Equal(t, "", file)
}
