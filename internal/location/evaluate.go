package location

import (
	"fmt"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

// EvaluateExpression runs a raw DWARF expression (an exprloc attribute's
// bytes, or a single location-list entry's instructions) against regs,
// resolving any DW_OP_deref against mem. The returned value is the
// address or register value the stack program leaves on top of its
// stack; ptrSize is the target's address width in bytes.
func EvaluateExpression(instr []byte, regs delveop.DwarfRegisters, ptrSize int, mem MemoryReader) (uint64, *tracerr.Error) {
	readMemory := func(buf []byte, addr uint64) (int, error) {
		data := mem.ReadSlice(addr, addr+uint64(len(buf)))
		if data == nil {
			return 0, fmt.Errorf("no memory available at %#x", addr)
		}
		n := copy(buf, data)
		return n, nil
	}

	result, err := delveop.ExecuteStackProgram(regs, instr, ptrSize, readMemory)
	if err != nil {
		return 0, tracerr.NewLocationEvaluationStepNotImplemented(err.Error())
	}
	return uint64(result), nil
}
