package cortexm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tweedegolf/stackdump-sub000/platform"
)

func newTestContext() *Context {
	return &Context{
		resetLow: 0x0800_0000, resetHigh: 0x0800_0010,
		textLow: 0x0800_0000, textHigh: 0x0800_1000,
	}
}

func TestClassifyReachingResetVectorFinishes(t *testing.T) {
	c := newTestContext()
	caller := platform.NewRegisters()
	caller.Set(PC, 0x0800_0004)
	caller.Set(LR, 0)
	caller.Set(SP, 0x2000_0000)

	res := c.classify(caller, platform.Normal, fakeMemory{})
	require.Equal(t, platform.Finished, res.Outcome)
}

func TestClassifyZeroLinkRegisterFinishes(t *testing.T) {
	c := newTestContext()
	caller := platform.NewRegisters()
	caller.Set(PC, 0x0800_0500)
	caller.Set(LR, 0)
	caller.Set(SP, 0x2000_0000)

	res := c.classify(caller, platform.Normal, fakeMemory{})
	require.Equal(t, platform.Finished, res.Outcome)
}

func TestClassifyOutsideTextWithLowLRFinishes(t *testing.T) {
	c := newTestContext()
	caller := platform.NewRegisters()
	caller.Set(PC, 0x3000_0000) // outside .text
	caller.Set(LR, 0x08000100)  // < resetVectorMarker
	caller.Set(SP, 0x2000_0000)

	res := c.classify(caller, platform.Normal, fakeMemory{})
	require.Equal(t, platform.Finished, res.Outcome)
}

func TestClassifyUnreadableStackIsCorrupted(t *testing.T) {
	c := newTestContext()
	caller := platform.NewRegisters()
	caller.Set(PC, 0x0800_0500)
	caller.Set(LR, 0x0800_0600)
	caller.Set(SP, 0x2000_0000)

	res := c.classify(caller, platform.Normal, fakeMemory{}) // empty memory, nothing readable
	require.Equal(t, platform.Corrupted, res.Outcome)
}

func TestStepStartingInResetVectorFinishes(t *testing.T) {
	c := newTestContext()
	regs := platform.NewRegisters()
	regs.Set(PC, 0x0800_0004) // already inside the reset vector
	regs.Set(LR, 0xFFFF_FFFF)
	regs.Set(SP, 0x2000_0000)

	res := c.Step(fakeMemory{}, regs)
	require.Equal(t, platform.Finished, res.Outcome)
}

func TestStepStartingWithZeroLinkRegisterFinishes(t *testing.T) {
	c := newTestContext()
	regs := platform.NewRegisters()
	regs.Set(PC, 0x0800_0500)
	regs.Set(LR, 0)
	regs.Set(SP, 0x2000_0000)

	res := c.Step(fakeMemory{}, regs)
	require.Equal(t, platform.Finished, res.Outcome)
}

func TestClassifyProceedsWithReadableStack(t *testing.T) {
	c := newTestContext()
	caller := platform.NewRegisters()
	caller.Set(PC, 0x0800_0500)
	caller.Set(LR, 0x0800_0600)
	caller.Set(SP, 0x2000_0000)

	mem := fakeMemory{base: 0x2000_0000, data: make([]byte, 16)}
	res := c.classify(caller, platform.Normal, mem)
	require.Equal(t, platform.Proceeded, res.Outcome)
	require.Equal(t, platform.Normal, res.CalleeKind)
}
