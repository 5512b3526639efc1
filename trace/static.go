package trace

import (
	"debug/dwarf"
	"debug/elf"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/image"
	"github.com/tweedegolf/stackdump-sub000/internal/location"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typebuilder"
	"github.com/tweedegolf/stackdump-sub000/internal/variablereader"
	"github.com/tweedegolf/stackdump-sub000/platform"
)

// staticVariableEntries collects every DW_TAG_variable reachable from a
// compile unit or a namespace without descending into any type or
// subprogram DIE (a function's own statics are function-scoped locals,
// found instead the same way its stack variables are).
func staticVariableEntries(d *dwarf.Data) ([]*dwarf.Entry, *tracerr.Error) {
	r := d.Reader()
	var out []*dwarf.Entry
	depth := 0
	for {
		e, err := r.Next()
		if err != nil {
			return nil, tracerr.NewDebugParseError(err)
		}
		if e == nil {
			break
		}
		if e.Tag == 0 {
			if depth > 0 {
				depth--
			}
			continue
		}

		switch e.Tag {
		case dwarf.TagCompileUnit, dwarf.TagNamespace:
			if e.Children {
				depth++
			}
		case dwarf.TagVariable:
			out = append(out, e)
			if e.Children {
				depth++
			}
		default:
			if e.Children {
				r.SkipChildren()
			}
		}
	}
	return out, nil
}

// staticFrame builds the one synthetic Frame holding every file/
// namespace-scope variable this executable defines, filtered the way a
// logging framework's merged-and-stripped globals are: kept unless its
// linkage name resolves to a symbol parked in a section the linker
// never allocates into the running image (the shape a side-channel
// logging section takes), dropped when the linkage name resolves to no
// symbol at all and the variable has no usable address (link-time-
// optimized away, rather than folded into another symbol by the
// linker).
func staticFrame(img *image.Image, cache *typebuilder.Cache, mem variablereader.MemoryReader) (Frame, *tracerr.Error) {
	entries, terr := staticVariableEntries(img.DWARF)
	if terr != nil {
		return Frame{}, terr
	}

	regs := buildDwarfRegisters(platform.NewRegisters(), 0, false)
	r := img.DWARF.Reader()

	var vars []Variable
	for _, e := range entries {
		addr, haveAddr := staticAddress(e, img.DebugLoc, regs, mem)
		if !keepStatic(img, e, addr, haveAddr) {
			continue
		}

		v, terr := buildVariable(cache, r, img.DWARF, e, 0, img.DebugLoc, regs, mem)
		if terr != nil {
			return Frame{}, terr
		}
		vars = append(vars, v)
	}

	return Frame{FunctionName: "Static", Kind: Static, Variables: vars}, nil
}

// staticAddress evaluates a variable DIE's DW_AT_location for the
// address alone, used only to drive keepStatic's heuristic; a variable
// whose location can't be resolved here is not itself dropped by this
// function, only reported as haveAddr=false.
func staticAddress(e *dwarf.Entry, locSection []byte, regs delveop.DwarfRegisters, mem variablereader.MemoryReader) (uint64, bool) {
	field := e.AttrField(dwarf.AttrLocation)
	if field == nil {
		return 0, false
	}
	addr, dataErr, terr := location.EvaluateLocation(field, 0, locSection, 0, ptrSize, regs, mem)
	if terr != nil || dataErr != nil {
		return 0, false
	}
	return addr, true
}

// keepStatic applies the linkage-name/symbol-section predicate: no
// linkage name keeps the variable; a resolved symbol keeps it unless
// its section is unallocated; an unresolved linkage name keeps the
// variable only when it still carries a nonzero address (a merged
// global), dropping it otherwise (optimized away entirely).
func keepStatic(img *image.Image, e *dwarf.Entry, addr uint64, haveAddr bool) bool {
	linkageName := dwarfx.OptionalString(e, dwarf.AttrLinkageName)
	if linkageName == "" {
		return true
	}

	sym, ok := img.SymbolByName(linkageName)
	if !ok {
		return haveAddr && addr != 0
	}
	sec, ok := img.SectionAt(sym.Section)
	if !ok {
		return true
	}
	return sec.Flags&elf.SHF_ALLOC != 0
}
