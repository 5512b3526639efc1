package typebuilder

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// buildVariantPart builds the discriminant (the DW_TAG_member DW_AT_discr
// points at) as one child named "discriminant", followed by one child
// per DW_TAG_variant carrying its DW_AT_discr_value and wrapping that
// variant's single payload member — the variable reader matches the
// read discriminant against these DiscriminantValue fields to pick
// which variant's payload to decode.
func buildVariantPart(cache *Cache, r *dwarf.Reader, vp *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	node := typevalue.NewNode("variants", typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnion}}, typevalue.BitRange{})

	if discrOff, terr := dwarfx.RequiredOffset(vp, dwarf.AttrDiscr); terr == nil {
		discrEntry, terr := dwarfx.EntryAt(r, discrOff)
		if terr != nil {
			return nil, terr
		}
		if discrEntry != nil {
			discr, terr := buildMember(cache, r, discrEntry)
			if terr != nil {
				return nil, terr
			}
			discr.Rename("discriminant")
			node.AddChild(discr)
		}
	}

	kids, terr := dwarfx.Children(r, vp.Offset)
	if terr != nil {
		return nil, terr
	}
	for _, v := range kids {
		if v.Tag != dwarf.TagVariant {
			continue
		}
		variant, terr := buildVariant(cache, r, v)
		if terr != nil {
			return nil, terr
		}
		node.AddChild(variant)
	}
	return node, nil
}

// variantDiscriminant reads a DW_TAG_variant's selector: DW_AT_discr_value
// if present, the default-variant case (neither attribute present) as
// ok=false, or OperationNotImplemented if only DW_AT_discr_list is
// present — genuinely unimplemented, per spec, rather than a default.
func variantDiscriminant(v *dwarf.Entry) (int64, bool, *tracerr.Error) {
	if val, ok := dwarfx.OptionalSdata(v, dwarf.AttrDiscrValue); ok {
		return val, true, nil
	}
	if v.AttrField(dwarf.AttrDiscrList) != nil {
		return 0, false, tracerr.NewOperationNotImplemented("DW_AT_discr_list")
	}
	return 0, false, nil
}

func buildVariant(cache *Cache, r *dwarf.Reader, v *dwarf.Entry) (*typevalue.TypeValueTree, *tracerr.Error) {
	discrValue, hasDiscrValue, terr := variantDiscriminant(v)
	if terr != nil {
		return nil, terr
	}

	members, terr := dwarfx.Children(r, v.Offset)
	if terr != nil {
		return nil, terr
	}

	vt := typevalue.VariableType{Archetype: typevalue.Archetype{Kind: typevalue.TaggedUnionVariant, DiscriminantValue: discrValue, HasDiscriminantValue: hasDiscrValue}}
	variant := typevalue.NewNode("", vt, typevalue.BitRange{})
	if !hasDiscrValue {
		variant.SetError(typevalue.NewNoDataAvailable())
	}
	for _, m := range members {
		if m.Tag != dwarf.TagMember {
			continue
		}
		payload, terr := buildMember(cache, r, m)
		if terr != nil {
			return nil, terr
		}
		variant.Name = payload.Name
		variant.BitRange = payload.BitRange
		variant.AddChild(payload.Rename("payload"))
	}
	return variant, nil
}
