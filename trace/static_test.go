package trace

import (
	"debug/dwarf"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/stackdump-sub000/internal/image"
)

func TestKeepStaticWithNoLinkageNameIsAlwaysKept(t *testing.T) {
	e := &dwarf.Entry{Tag: dwarf.TagVariable}
	img := &image.Image{}
	require.True(t, keepStatic(img, e, 0, false))
}

func TestKeepStaticDropsUnresolvedSymbolWithNoAddress(t *testing.T) {
	e := &dwarf.Entry{
		Tag:   dwarf.TagVariable,
		Field: []dwarf.Field{{Attr: dwarf.AttrLinkageName, Val: "_ZN4defmt7TIMSTMP"}},
	}
	img := &image.Image{}
	require.False(t, keepStatic(img, e, 0, false), "an unresolved symbol with no usable address looks link-time-optimized away")
}

func TestKeepStaticKeepsUnresolvedSymbolWithNonzeroAddress(t *testing.T) {
	e := &dwarf.Entry{
		Tag:   dwarf.TagVariable,
		Field: []dwarf.Field{{Attr: dwarf.AttrLinkageName, Val: "merged_global"}},
	}
	img := &image.Image{}
	require.True(t, keepStatic(img, e, 0x2000_0010, true), "a nonzero address despite no symbol looks like an LLVM-merged global")
}
