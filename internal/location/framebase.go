package location

import (
	"debug/dwarf"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

// ResolveFrameBase evaluates a subprogram's DW_AT_frame_base expression
// (almost always DW_OP_call_frame_cfa on Cortex-M, sometimes a plain
// DW_OP_breg7/DW_OP_breg13 stack-pointer-relative expression) so that
// local variables using DW_OP_fbreg can be resolved against it. An
// absent DW_AT_frame_base (a nil field) is reported as an
// UnknownFrameBase error.
func ResolveFrameBase(field *dwarf.Field, regs delveop.DwarfRegisters, ptrSize int, mem MemoryReader) (uint64, *tracerr.Error) {
	if field == nil {
		return 0, tracerr.NewUnknownFrameBase()
	}
	instr, ok := field.Val.([]byte)
	if !ok {
		return 0, tracerr.NewWrongAttributeValueType("DW_AT_frame_base", "exprloc")
	}
	return EvaluateExpression(instr, regs, ptrSize, mem)
}
