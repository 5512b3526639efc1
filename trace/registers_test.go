package trace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/stackdump-sub000/core"
	"github.com/tweedegolf/stackdump-sub000/platform/cortexm"
)

func TestInitialRegistersReadsOnlyCapturedRegisters(t *testing.T) {
	mem := core.NewDeviceMemory()
	mem.AddRegisterData(core.NewRegisterBank(cortexm.R0, 4, make([]uint64, cortexm.PC-cortexm.R0+1)))

	regs := initialRegisters(mem)
	_, ok := regs.Get(uint64(cortexm.PC))
	require.True(t, ok)
	_, ok = regs.Get(uint64(cortexm.S0))
	require.False(t, ok, "no FPU bank was captured, so the S-registers must be absent")
}

func TestBuildDwarfRegistersSetsCFAAndFrameBase(t *testing.T) {
	mem := core.NewDeviceMemory()
	mem.AddRegisterData(core.NewRegisterBank(cortexm.R0, 4, make([]uint64, cortexm.PC-cortexm.R0+1)))
	regs := initialRegisters(mem)

	dwRegs := buildDwarfRegisters(regs, 0x2000_0040, true)
	require.Equal(t, int64(0x2000_0040), dwRegs.CFA)
	require.Equal(t, int64(0x2000_0040), dwRegs.FrameBase)
}

func TestBuildDwarfRegistersLeavesCFAUnsetWhenUnavailable(t *testing.T) {
	regs := initialRegisters(core.NewDeviceMemory())
	dwRegs := buildDwarfRegisters(regs, 0, false)
	require.Zero(t, dwRegs.CFA)
	require.Zero(t, dwRegs.FrameBase)
}
