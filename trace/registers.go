package trace

import (
	"encoding/binary"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"

	"github.com/tweedegolf/stackdump-sub000/core"
	"github.com/tweedegolf/stackdump-sub000/platform"
	"github.com/tweedegolf/stackdump-sub000/platform/cortexm"
)

// knownRegisters lists every DWARF register number a captured snapshot
// might supply: the integer file plus the extended-frame FPU singles.
// Probed individually against core.DeviceMemory rather than iterating
// its register banks directly, since DeviceMemory exposes no such
// iterator and this repo targets exactly one register file shape.
func knownRegisters() []uint16 {
	regs := make([]uint16, 0, 16+32)
	for r := uint16(cortexm.R0); r <= uint16(cortexm.PC); r++ {
		regs = append(regs, r)
	}
	for i := 0; i < 32; i++ {
		regs = append(regs, uint16(cortexm.S0+i))
	}
	return regs
}

// initialRegisters builds the register file the unwinder starts from
// out of whichever of knownRegisters the snapshot actually captured.
func initialRegisters(mem *core.DeviceMemory) platform.Registers {
	regs := platform.NewRegisters()
	for _, id := range knownRegisters() {
		if v, err := mem.Register(id); err == nil {
			regs.Set(uint64(id), v)
		}
	}
	return regs
}

// maxDwarfRegNum bounds the slice buildDwarfRegisters allocates; S0+31
// is the highest register number knownRegisters probes.
const maxDwarfRegNum = cortexm.S0 + 32

// buildDwarfRegisters adapts a platform.Registers file to the
// delve-style DwarfRegisters a location expression evaluator expects,
// grounded on _examples/golang-debug/internal/gocore/dwarf.go's
// hardwareRegs2DWARF. cfa, when haveCFA, becomes both .CFA and
// .FrameBase, mirroring process.go's readFrame/regs.CFA pattern: the
// same canonical frame address serves both DW_OP_call_frame_cfa and a
// variable's DW_AT_frame_base lookup.
func buildDwarfRegisters(regs platform.Registers, cfa uint64, haveCFA bool) delveop.DwarfRegisters {
	dregs := make([]*delveop.DwarfRegister, maxDwarfRegNum)
	for n, v := range regs.Values {
		if n >= uint64(len(dregs)) {
			continue
		}
		dreg := delveop.DwarfRegisterFromUint64(v)
		dreg.FillBytes()
		dregs[n] = dreg
	}

	// Cortex-M's EABI has no dedicated frame-pointer register distinct
	// from SP in this unwinder's model (CFI already resolves it), so SP
	// stands in for the bpRegNum argument delve's constructor expects.
	rp := delveop.NewDwarfRegisters(0, dregs, binary.LittleEndian, cortexm.PC, cortexm.SP, cortexm.SP, cortexm.LR)
	if haveCFA {
		rp.CFA = int64(cfa)
		rp.FrameBase = int64(cfa)
	}
	return *rp
}
