package trace

import (
	"debug/dwarf"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/location"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typebuilder"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
	"github.com/tweedegolf/stackdump-sub000/internal/variablereader"
)

// ptrSize is the address width of the only platform this repo
// implements (Cortex-M, a 32-bit target).
const ptrSize = 4

// unresolvedParameterName replaces a DW_TAG_formal_parameter's name
// when it carries no DW_AT_name of its own or on its abstract origin —
// an optimized-out parameter still deserves a slot in the frame.
const unresolvedParameterName = "param"

// scopeVariables collects every DW_TAG_variable/DW_TAG_formal_parameter
// reachable from the DW_TAG_subprogram or DW_TAG_inlined_subroutine at
// root without crossing into a nested subprogram or inlined_subroutine
// (those belong to a different Frame). DW_TAG_lexical_block is
// transparent: its children are collected as though declared directly
// on root. r is repositioned by this call.
func scopeVariables(r *dwarf.Reader, root dwarf.Offset) ([]*dwarf.Entry, *tracerr.Error) {
	r.Seek(root)
	parent, err := r.Next()
	if err != nil {
		return nil, tracerr.NewDebugParseError(err)
	}
	if parent == nil || !parent.Children {
		return nil, nil
	}

	var out []*dwarf.Entry
	depth := 0
	for {
		e, err := r.Next()
		if err != nil {
			return nil, tracerr.NewDebugParseError(err)
		}
		if e == nil || e.Tag == 0 {
			if depth == 0 {
				break
			}
			depth--
			continue
		}

		switch e.Tag {
		case dwarf.TagVariable, dwarf.TagFormalParameter:
			out = append(out, e)
			if e.Children {
				r.SkipChildren()
			}
		case dwarf.TagSubprogram, dwarf.TagInlinedSubroutine:
			if e.Children {
				r.SkipChildren()
			}
		default:
			if e.Children {
				depth++
			}
		}
	}
	return out, nil
}

// buildVariable decodes entry (a DW_TAG_variable or
// DW_TAG_formal_parameter) into a Variable with its type tree filled
// from mem at pc, falling back to its DW_AT_abstract_origin for
// whichever of name/type/location entry itself omits — the same
// fallback addrline.locationFor applies to an inlined call's function
// name, applied here to an inlined call's locals.
func buildVariable(cache *typebuilder.Cache, tr *dwarf.Reader, d *dwarf.Data, entry *dwarf.Entry, pc uint64, locSection []byte, regs delveop.DwarfRegisters, mem variablereader.MemoryReader) (Variable, *tracerr.Error) {
	origin := entry
	inlined := false
	if off, ok := dwarfx.OptionalOffset(entry, dwarf.AttrAbstractOrigin); ok {
		if ae, terr := dwarfx.EntryAt(d.Reader(), off); terr == nil && ae != nil {
			origin = ae
			inlined = true
		}
	}

	name := entryName(entry)
	if name == "" {
		name = entryName(origin)
	}
	if name == "" && entry.Tag == dwarf.TagFormalParameter {
		name = unresolvedParameterName
	}

	typeHolder := entry
	if entry.AttrField(dwarf.AttrType) == nil {
		typeHolder = origin
	}
	typeOff, terr := dwarfx.EntryTypeOffset(typeHolder)
	if terr != nil {
		return Variable{}, terr
	}

	tree, terr := typebuilder.Build(cache, tr, typeOff)
	if terr != nil {
		return Variable{}, terr
	}
	tree = tree.Clone()

	locField := entry.AttrField(dwarf.AttrLocation)
	if locField == nil {
		locField = origin.AttrField(dwarf.AttrLocation)
	}
	if locField == nil {
		tree.SetError(typevalue.NewNoDataAvailable())
	} else {
		addr, dataErr, terr := location.EvaluateLocation(locField, pc, locSection, 0, ptrSize, regs, mem)
		if terr != nil {
			return Variable{}, terr
		}
		if dataErr != nil {
			tree.SetError(dataErr)
		} else {
			variablereader.Fill(tree, addr, mem)
		}
	}

	return Variable{
		Name: name,
		Kind: VariableKind{
			ZeroSized: tree.BitRange.Len() == 0,
			Inlined:   inlined,
			Parameter: entry.Tag == dwarf.TagFormalParameter,
		},
		TypeValue: tree,
	}, nil
}

// entryName reads DW_AT_name as a plain string, or "" if absent —
// mirroring internal/addrline's unexported helper of the same name for
// the same reason: both packages need "missing name" to be a normal,
// checkable case rather than an error.
func entryName(e *dwarf.Entry) string {
	if f := e.AttrField(dwarf.AttrName); f != nil {
		if s, ok := f.Val.(string); ok {
			return s
		}
	}
	return ""
}
