package trace

import (
	"debug/dwarf"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"

	"github.com/tweedegolf/stackdump-sub000/core"
	"github.com/tweedegolf/stackdump-sub000/internal/addrline"
	"github.com/tweedegolf/stackdump-sub000/internal/dwarfx"
	"github.com/tweedegolf/stackdump-sub000/internal/image"
	"github.com/tweedegolf/stackdump-sub000/internal/location"
	"github.com/tweedegolf/stackdump-sub000/internal/tracelog"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typebuilder"
	"github.com/tweedegolf/stackdump-sub000/platform"
	"github.com/tweedegolf/stackdump-sub000/platform/cortexm"
)

// Trace reconstructs the call stack captured in mem, starting from
// whatever register file it holds and stepping unwinder one frame at a
// time until it reaches the reset vector or a point it can no longer
// trust, then appends exactly one Static frame holding every
// file/namespace-scope variable img defines. Grounded on
// original_source/trace/src/platform/mod.rs's trace function.
func Trace(img *image.Image, unwinder platform.Unwinder, mem *core.DeviceMemory) ([]Frame, *tracerr.Error) {
	cache := typebuilder.NewCache()
	regs := initialRegisters(mem)

	var frames []Frame
	for {
		pc, ok := regs.Get(uint64(cortexm.PC))
		if !ok {
			return nil, tracerr.NewMissingAttribute("", 0, "pc")
		}

		chain, terr := addrline.Resolve(img.DWARF, pc)
		if terr != nil {
			if terr.Kind == tracerr.DwarfUnitNotFound {
				tracelog.Logger().WithField("pc", pc).Error("no compilation unit covers this pc; terminating trace")
				frames = append(frames, Frame{Kind: Corrupted, Message: terr.Error()})
				break
			}
			return nil, terr
		}

		dwRegs, terr := frameRegisters(img.DWARF, unwinder, regs, pc, chain, mem)
		if terr != nil {
			return nil, terr
		}

		r := img.DWARF.Reader()
		for _, loc := range chain {
			kind := Function
			if loc.Inline {
				kind = InlineFunction
			}
			frame := Frame{
				FunctionName: loc.FunctionName,
				Location:     SourceLocation{File: loc.File, Line: loc.Line, Column: loc.Column},
				Kind:         kind,
			}

			entries, terr := scopeVariables(r, loc.Offset)
			if terr != nil {
				return nil, terr
			}
			for _, e := range entries {
				v, terr := buildVariable(cache, r, img.DWARF, e, pc, img.DebugLoc, dwRegs, mem)
				if terr != nil {
					return nil, terr
				}
				frame.Variables = append(frame.Variables, v)
			}

			frames = append(frames, frame)
		}

		result := unwinder.Step(mem, regs)
		if result.CalleeKind == platform.Exception && len(frames) > 0 {
			frames[len(frames)-1].Kind = Exception
		}

		switch result.Outcome {
		case platform.Finished:
			frames = append(frames, Frame{FunctionName: "RESET", Kind: Function})
		case platform.Corrupted:
			tracelog.Logger().WithField("pc", pc).Warn("unwinder lost trust in the stack: " + result.Message)
			frames = append(frames, Frame{Kind: Corrupted, Message: result.Message})
		case platform.Proceeded:
			regs = result.Registers
			continue
		}
		break
	}

	sf, terr := staticFrame(img, cache, mem)
	if terr != nil {
		return nil, terr
	}
	frames = append(frames, sf)
	return frames, nil
}

// frameRegisters builds the register view every chain entry's
// variables are read through: the canonical frame address from
// unwinder.FrameBase, refined by actually evaluating the enclosing
// concrete subprogram's DW_AT_frame_base expression (almost always
// DW_OP_call_frame_cfa, which just echoes the CFA back, but not always),
// since inlined code shares its enclosing concrete subprogram's frame
// rather than carrying one of its own.
func frameRegisters(d *dwarf.Data, unwinder platform.Unwinder, regs platform.Registers, pc uint64, chain []addrline.Location, mem location.MemoryReader) (delveop.DwarfRegisters, *tracerr.Error) {
	cfa, haveCFA := unwinder.FrameBase(pc)
	dwRegs := buildDwarfRegisters(regs, cfa, haveCFA)
	if !haveCFA || len(chain) == 0 {
		return dwRegs, nil
	}

	concrete := chain[len(chain)-1]
	entry, terr := dwarfx.EntryAt(d.Reader(), concrete.Offset)
	if terr != nil || entry == nil {
		return dwRegs, nil
	}
	fbField := entry.AttrField(dwarf.AttrFrameBase)
	if fbField == nil {
		return dwRegs, nil
	}

	frameBase, terr := location.ResolveFrameBase(fbField, dwRegs, ptrSize, mem)
	if terr != nil {
		return dwRegs, nil
	}
	dwRegs.FrameBase = int64(frameBase)
	return dwRegs, nil
}
