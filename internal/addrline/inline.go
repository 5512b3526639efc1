package addrline

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

const (
	attrCallFile = dwarf.Attr(0x58)
	attrCallLine = dwarf.Attr(0x59)
)

// inlineChain walks the DIE subtree r is positioned on (immediately
// after a SeekPC call, so r is reading the children of the containing
// compile unit) and collects every TagSubprogram/TagInlinedSubroutine
// entry whose PC range covers pc, innermost first. r.SeekPC leaves the
// reader positioned past the enclosing compile unit's own entry but
// does not itself identify which subprogram pc falls in, so this walk
// is the only way to recover it.
//
// A DW_TAG_inlined_subroutine's own DW_AT_call_file/DW_AT_call_line
// describe where it itself was called from, in its *enclosing* scope —
// that is the caller's source position, not the callee's. So each
// matched entry's call-site attributes are written onto the frame
// already on top of the stack (its parent in the nesting, pushed the
// previous time through this loop) rather than onto the entry's own
// Location. lr resolves DW_AT_call_file's file-table index; nil if the
// compile unit has no line table, in which case File is left empty.
func inlineChain(d *dwarf.Data, r *dwarf.Reader, lr *dwarf.LineReader, pc uint64) ([]Location, *tracerr.Error) {
	var stack []Location
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

		matched := false
		if e.Tag == dwarf.TagSubprogram || e.Tag == dwarf.TagInlinedSubroutine {
			ranges, rerr := d.Ranges(e)
			if rerr == nil && pcInRanges(pc, ranges) {
				matched = true
				if e.Tag == dwarf.TagInlinedSubroutine && len(stack) > 0 {
					file, line := callSite(lr, e)
					stack[len(stack)-1].File = file
					stack[len(stack)-1].Line = line
				}
				stack = append(stack, locationFor(d, e))
			}
		}

		if !e.Children {
			continue
		}
		if (e.Tag == dwarf.TagSubprogram || e.Tag == dwarf.TagInlinedSubroutine) && !matched {
			// pc isn't in this entry's range, so nothing nested inside
			// it can contain pc either; skip straight past its children
			// (and their terminator) without touching depth.
			r.SkipChildren()
			continue
		}
		depth++
	}

	// stack was appended outer-to-inner; reverse for innermost-first.
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack, nil
}

// callSite reads a DW_TAG_inlined_subroutine's call-site position,
// resolving DW_AT_call_file against lr's file table (nil lr, or an
// out-of-range index, yields an empty file name).
func callSite(lr *dwarf.LineReader, e *dwarf.Entry) (string, int) {
	var line int
	if f := e.AttrField(attrCallLine); f != nil {
		if n, ok := f.Val.(int64); ok {
			line = int(n)
		}
	}
	file := ""
	if lr != nil {
		if f := e.AttrField(attrCallFile); f != nil {
			if idx, ok := f.Val.(int64); ok {
				files := lr.Files()
				if idx >= 0 && int(idx) < len(files) && files[idx] != nil {
					file = files[idx].Name
				}
			}
		}
	}
	return file, line
}

func pcInRanges(pc uint64, ranges [][2]uint64) bool {
	for _, r := range ranges {
		if r[0] <= pc && pc < r[1] {
			return true
		}
	}
	return false
}

func locationFor(d *dwarf.Data, e *dwarf.Entry) Location {
	name := entryName(e)
	if name == "" {
		if origin, ok := dwarfx.OptionalOffset(e, dwarf.AttrAbstractOrigin); ok {
			// A fresh reader, never the shared walk reader r: EntryAt
			// seeks, which would otherwise corrupt inlineChain's position.
			if ae, terr := dwarfx.EntryAt(d.Reader(), origin); terr == nil && ae != nil {
				name = entryName(ae)
			}
		}
	}
	// File/Line are left zero here: they describe where e's own code
	// runs, which is filled in either from the line table (the innermost
	// frame, by addrline.go's Resolve) or from the next entry further in
	// the chain's call-site attributes (every enclosing frame, by this
	// function's caller).
	return Location{
		FunctionName: name,
		Inline:       e.Tag == dwarf.TagInlinedSubroutine,
		Offset:       e.Offset,
	}
}

func entryName(e *dwarf.Entry) string {
	if f := e.AttrField(dwarf.AttrName); f != nil {
		if s, ok := f.Val.(string); ok {
			return s
		}
	}
	return ""
}
