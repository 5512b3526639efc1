package variablereader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/stackdump-sub000/core"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

func discriminantNode() *typevalue.TypeValueTree {
	return typevalue.NewNode("discriminant",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.BaseType, Encoding: ateUnsigned}},
		typevalue.BitRange{Start: 0, End: 8})
}

func variantNode(value int64, hasValue bool, payloadValue byte) *typevalue.TypeValueTree {
	v := typevalue.NewNode("",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnionVariant, DiscriminantValue: value, HasDiscriminantValue: hasValue}},
		typevalue.BitRange{Start: 0, End: 8})
	payload := typevalue.NewNode("payload",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.BaseType, Encoding: ateUnsigned}},
		typevalue.BitRange{Start: 0, End: 8})
	v.AddChild(payload)
	_ = payloadValue
	return v
}

func TestFillVariantsDecodesMatchingVariant(t *testing.T) {
	mem := core.NewDeviceMemory()
	mem.AddMemoryRegion(core.NewMemoryRegion(0, []byte{1}))

	variants := typevalue.NewNode("variants",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnion}},
		typevalue.BitRange{})
	variants.AddChild(discriminantNode())
	matching := variantNode(1, true, 0)
	other := variantNode(2, true, 0)
	variants.AddChild(matching)
	variants.AddChild(other)

	fillVariants(variants, 0, mem)

	require.False(t, matching.IsErr())
	require.Equal(t, typevalue.Object(), matching.Value)
	require.Equal(t, typevalue.TypeValueTree{}.Value, other.Value, "an unmatched, non-default variant is left entirely unread")
}

func TestFillVariantsFallsBackToDefaultVariant(t *testing.T) {
	mem := core.NewDeviceMemory()
	mem.AddMemoryRegion(core.NewMemoryRegion(0, []byte{9}))

	variants := typevalue.NewNode("variants",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnion}},
		typevalue.BitRange{})
	variants.AddChild(discriminantNode())
	other := variantNode(1, true, 0)
	def := variantNode(0, false, 0)
	variants.AddChild(other)
	variants.AddChild(def)

	fillVariants(variants, 0, mem)

	require.False(t, def.IsErr())
	require.Equal(t, typevalue.Object(), def.Value, "no explicit variant matched 9, so the default arm is decoded")
}

func TestFillVariantsLeavesEverythingUnreadWithNoMatchAndNoDefault(t *testing.T) {
	mem := core.NewDeviceMemory()
	mem.AddMemoryRegion(core.NewMemoryRegion(0, []byte{9}))

	variants := typevalue.NewNode("variants",
		typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnion}},
		typevalue.BitRange{})
	variants.AddChild(discriminantNode())
	only := variantNode(1, true, 0)
	variants.AddChild(only)

	require.NotPanics(t, func() { fillVariants(variants, 0, mem) })
	require.Equal(t, typevalue.TypeValueTree{}.Value, only.Value, "with no match and no default, the variant stays unread rather than erroring")
}
