package cortexm

import (
	"encoding/binary"

	"github.com/go-delve/delve/pkg/dwarf/frame"

	"github.com/tweedegolf/stackdump-sub000/platform"
)

var _ platform.Unwinder = (*Context)(nil)

// resetVectorMarker is the start of the EXC_RETURN value space: an LR
// below it is an ordinary (non-exception) return address. Used by the
// termination heuristic, which ends the trace when pc is outside .text
// and LR is below this value.
const resetVectorMarker = 0xFFFF_FFE0

// Step produces the caller's registers from regs, the callee's: an
// ordinary frame is resolved from call frame information, an exception
// frame is resolved by reading the hardware-stacked register context
// directly, since no CFI describes it.
func (c *Context) Step(mem platform.MemoryReader, regs platform.Registers) platform.StepResult {
	lr, haveLR := regs.Get(LR)
	pc, havePC := regs.Get(PC)
	sp, haveSP := regs.Get(SP)
	if !haveLR || !havePC || !haveSP {
		return platform.StepResult{Outcome: platform.Corrupted, Message: "required register (sp, lr or pc) is not available"}
	}

	// The current context may already be the outermost frame (tracing
	// started with PC inside the reset vector, or LR already unwound
	// past .text) — nothing to step away from in that case.
	if res, done := c.checkTerminal(pc, lr); done {
		return res
	}

	if isExcReturn(lr) {
		return c.stepException(lr, sp, mem)
	}
	return c.stepCall(pc, sp, lr, regs, mem)
}

// FrameBase returns pc's canonical frame address, the value a
// DW_AT_frame_base of DW_OP_call_frame_cfa resolves to — the same call
// frame information Step applies, queried without producing a caller.
func (c *Context) FrameBase(pc uint64) (uint64, bool) {
	fde, err := c.fdes.FDEForPC(pc)
	if err != nil {
		return 0, false
	}
	cfa := uint64(fde.EstablishFrame(pc).CFA)
	return cfa, cfa != 0
}

func (c *Context) stepCall(pc, sp, lr uint64, regs platform.Registers, mem platform.MemoryReader) platform.StepResult {
	fde, err := c.fdes.FDEForPC(pc)
	if err != nil {
		return platform.StepResult{Outcome: platform.Corrupted, Message: "no call frame information covers this address; the executable may be missing debug info or was compiled with insufficient detail"}
	}
	fc := fde.EstablishFrame(pc)
	cfa := uint64(fc.CFA)
	if cfa == 0 {
		return platform.StepResult{Outcome: platform.Corrupted, Message: "call frame information does not describe how to compute the canonical frame address here"}
	}

	caller := platform.NewRegisters()
	for regNum, rule := range fc.Regs {
		if v, ok := applyRule(rule, regNum, regs, cfa, mem); ok {
			caller.Set(regNum, v)
		}
	}
	caller.Set(SP, cfa)

	callerPC, ok := caller.Get(LR)
	if ok {
		caller.Set(PC, callerPC)
	}

	// Corruption check: the CFA didn't move and LR/PC (ignoring the
	// Thumb bit) are identical — a degenerate frame that would unwind
	// forever without ever terminating.
	if cfa == sp && (lr&^THUMBBit) == (pc&^THUMBBit) {
		return platform.StepResult{Outcome: platform.Corrupted, Message: "CFA did not change and LR and PC are equal"}
	}

	return c.classify(caller, platform.Normal, mem)
}

func (c *Context) stepException(excReturn, sp uint64, mem platform.MemoryReader) platform.StepResult {
	ef, terr := readExceptionFrame(sp, excReturn, mem)
	if terr != nil {
		return platform.StepResult{Outcome: platform.Corrupted, Message: terr.Error()}
	}

	caller := platform.NewRegisters()
	caller.Set(R0, ef.R0)
	caller.Set(R1, ef.R1)
	caller.Set(R2, ef.R2)
	caller.Set(R3, ef.R3)
	caller.Set(R12, ef.R12)
	caller.Set(LR, ef.LR)
	caller.Set(PC, ef.ReturnAddress)
	caller.Set(SP, ef.callerSP(sp))
	if ef.extended {
		for i, v := range ef.FP {
			caller.Set(S0+uint64(i), v)
		}
	}

	return c.classify(caller, platform.Exception, mem)
}

// checkTerminal applies the shared termination predicate — reaching the
// reset vector, or an LR that can no longer be a valid return address
// once we're outside .text — to a (pc, lr) pair, whether that pair is
// the context Step was called with or the caller it just computed.
func (c *Context) checkTerminal(pc, lr uint64) (platform.StepResult, bool) {
	if pc >= c.resetLow && pc < c.resetHigh {
		return platform.StepResult{Outcome: platform.Finished}, true
	}
	outsideText := pc < c.textLow || pc >= c.textHigh
	if lr == 0 || (outsideText && lr < resetVectorMarker) {
		return platform.StepResult{Outcome: platform.Finished}, true
	}
	return platform.StepResult{}, false
}

// classify applies checkTerminal to the caller's registers, then the
// stack-readability check, once the caller has been produced by either
// unwind path.
func (c *Context) classify(caller platform.Registers, calleeKind platform.FrameKind, mem platform.MemoryReader) platform.StepResult {
	pc, _ := caller.Get(PC)
	lr, _ := caller.Get(LR)
	sp, haveSP := caller.Get(SP)

	if res, done := c.checkTerminal(pc, lr); done {
		res.CalleeKind = calleeKind
		return res
	}

	if !haveSP || mem.ReadSlice(sp, sp+4) == nil {
		return platform.StepResult{Outcome: platform.Corrupted, Message: "stack pointer corrupted or dump incomplete", CalleeKind: calleeKind}
	}

	return platform.StepResult{Outcome: platform.Proceeded, Registers: caller, CalleeKind: calleeKind}
}

func applyRule(rule frame.DWRule, regNum uint64, regs platform.Registers, cfa uint64, mem platform.MemoryReader) (uint64, bool) {
	switch rule.Rule {
	case frame.RuleOffset:
		addr := uint64(int64(cfa) + rule.Offset)
		data := mem.ReadSlice(addr, addr+4)
		if data == nil {
			return 0, false
		}
		return uint64(binary.LittleEndian.Uint32(data)), true
	case frame.RuleValOffset:
		return uint64(int64(cfa) + rule.Offset), true
	case frame.RuleRegister:
		return regs.Get(rule.Reg)
	case frame.RuleCFA:
		return cfa, true
	case frame.RuleSameVal:
		return regs.Get(regNum)
	default:
		return 0, false
	}
}
