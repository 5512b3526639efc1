package typebuilder

import (
	"debug/dwarf"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

func TestVariantDiscriminantExplicitValue(t *testing.T) {
	v := &dwarf.Entry{
		Tag: dwarf.TagVariant,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrDiscrValue, Val: int64(3)},
		},
	}

	val, ok, terr := variantDiscriminant(v)
	require.Nil(t, terr)
	require.True(t, ok)
	require.Equal(t, int64(3), val)
}

func TestVariantDiscriminantDefaultVariant(t *testing.T) {
	v := &dwarf.Entry{Tag: dwarf.TagVariant}

	val, ok, terr := variantDiscriminant(v)
	require.Nil(t, terr)
	require.False(t, ok)
	require.Equal(t, int64(0), val)
}

func TestVariantDiscriminantListUnimplemented(t *testing.T) {
	v := &dwarf.Entry{
		Tag: dwarf.TagVariant,
		Field: []dwarf.Field{
			{Attr: dwarf.AttrDiscrList, Val: []byte{0x01, 0x02}},
		},
	}

	_, _, terr := variantDiscriminant(v)
	require.NotNil(t, terr)
	require.Equal(t, tracerr.OperationNotImplemented, terr.Kind)
}
