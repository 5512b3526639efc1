package cortexm

import (
	"encoding/binary"

	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/platform"
)

// excReturnMarker identifies an EXC_RETURN value: the top byte is always
// 0xFF on every Cortex-M variant that supports exceptions.
const excReturnMarker = 0xFF000000

// ftypeMask is bit 4 of EXC_RETURN (the FTYPE bit). Per the ARMv7-M/
// ARMv8-M architecture reference and the GLOSSARY this repo carries
// forward: FTYPE=1 means no floating-point context was stacked (a
// "basic" 8-word frame); FTYPE=0 means an extended frame with FPU
// context was stacked. Worked example: 0xFFFFFFF9 has bit 4 set (basic),
// 0xFFFFFFED has bit 4 clear (extended).
const ftypeMask = 0x10

const (
	basicFrameWords    = 8  // R0,R1,R2,R3,R12,LR,ReturnAddress,xPSR, at sp+0..sp+7
	extendedExtraWords = 17 // S0-S15, FPSCR, stacked above the basic 8 at sp+8..sp+24
	extendedFrameWords = basicFrameWords + extendedExtraWords
)

// isExcReturn reports whether lr is an EXC_RETURN value rather than an
// ordinary return address.
func isExcReturn(lr uint64) bool {
	return uint32(lr)&excReturnMarker == excReturnMarker
}

// isExtendedFrame reports whether the stacked exception frame includes
// FPU context.
func isExtendedFrame(excReturn uint64) bool {
	return uint32(excReturn)&ftypeMask == 0
}

// exceptionFrame is the subset of the automatically stacked hardware
// exception frame this repo needs to resolve the interrupted context.
type exceptionFrame struct {
	R0, R1, R2, R3, R12 uint64
	LR                  uint64 // the interrupted code's own LR, not EXC_RETURN
	ReturnAddress       uint64 // the interrupted code's PC
	XPSR                uint64
	FP                  [16]uint64 // S0..S15, only populated for an extended frame
	extended            bool
	frameWords          int
}

// readExceptionFrame reads the hardware-stacked frame starting at sp,
// the stack pointer's value immediately after the exception entry. The
// basic 8-word integer context always sits at sp+0; when the frame is
// extended, 16 single-precision FPU words (S0-S15) plus FPSCR follow it
// at sp+32..sp+99 (FPSCR itself, at sp+96, is not read).
func readExceptionFrame(sp uint64, excReturn uint64, mem platform.MemoryReader) (*exceptionFrame, *tracerr.Error) {
	extended := isExtendedFrame(excReturn)
	words := basicFrameWords
	if extended {
		words = extendedFrameWords
	}

	data := mem.ReadSlice(sp, sp+basicFrameWords*4)
	if data == nil {
		return nil, tracerr.NewMissingMemory(sp)
	}

	u32 := func(off int) uint64 { return uint64(binary.LittleEndian.Uint32(data[off:])) }
	ef := &exceptionFrame{
		R0:            u32(0),
		R1:            u32(4),
		R2:            u32(8),
		R3:            u32(12),
		R12:           u32(16),
		LR:            u32(20),
		ReturnAddress: u32(24),
		XPSR:          u32(28),
		extended:      extended,
		frameWords:    words,
	}
	if !extended {
		return ef, nil
	}

	fpBase := sp + basicFrameWords*4
	fpData := mem.ReadSlice(fpBase, fpBase+16*4)
	if fpData == nil {
		return nil, tracerr.NewMissingMemory(fpBase)
	}
	for i := range ef.FP {
		ef.FP[i] = uint64(binary.LittleEndian.Uint32(fpData[i*4:]))
	}
	return ef, nil
}

// callerSP is the stack pointer the interrupted code had before the
// hardware pushed this frame.
func (f *exceptionFrame) callerSP(sp uint64) uint64 {
	return sp + uint64(f.frameWords)*4
}
