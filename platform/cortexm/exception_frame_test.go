package cortexm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	base uint64
	data []byte
}

func (m fakeMemory) ReadSlice(start, end uint64) []byte {
	if start < m.base || end > m.base+uint64(len(m.data)) {
		return nil
	}
	return m.data[start-m.base : end-m.base]
}

func TestIsExcReturnRecognizesMarker(t *testing.T) {
	require.True(t, isExcReturn(0xFFFFFFF9))
	require.True(t, isExcReturn(0xFFFFFFED))
	require.False(t, isExcReturn(0x08000201))
}

func TestFtypePolarityBasicFrame(t *testing.T) {
	// 0xFFFFFFF9 (spec's basic 8-word frame scenario): bit 4 of 0xF9 is
	// set (0xF9 = 0b1111_1001), so this is the *basic* frame.
	require.False(t, isExtendedFrame(0xFFFFFFF9))
}

func TestFtypePolarityExtendedFrame(t *testing.T) {
	// 0xFFFFFFED (spec's extended 25-word FPU frame scenario): bit 4 of
	// 0xED is clear (0xED = 0b1110_1101), so this is the *extended* frame.
	require.True(t, isExtendedFrame(0xFFFFFFED))
}

func TestReadExceptionFrameBasic(t *testing.T) {
	sp := uint64(0x2000_0000)
	buf := make([]byte, basicFrameWords*4)
	binary.LittleEndian.PutUint32(buf[0:], 0x1)  // R0
	binary.LittleEndian.PutUint32(buf[4:], 0x2)  // R1
	binary.LittleEndian.PutUint32(buf[8:], 0x3)  // R2
	binary.LittleEndian.PutUint32(buf[12:], 0x4) // R3
	binary.LittleEndian.PutUint32(buf[16:], 0x5) // R12
	binary.LittleEndian.PutUint32(buf[20:], 0x6) // LR
	binary.LittleEndian.PutUint32(buf[24:], 0x08001001)
	binary.LittleEndian.PutUint32(buf[28:], 0x01000000) // xPSR

	mem := fakeMemory{base: sp, data: buf}
	ef, terr := readExceptionFrame(sp, 0xFFFFFFF9, mem)
	require.Nil(t, terr)
	require.Equal(t, uint64(0x08001001), ef.ReturnAddress)
	require.Equal(t, basicFrameWords, ef.frameWords)
	require.Equal(t, sp+basicFrameWords*4, ef.callerSP(sp))
}

func TestReadExceptionFrameExtendedAdjustsByBasicPlus17Words(t *testing.T) {
	sp := uint64(0x2000_0000)
	total := extendedFrameWords * 4
	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[24:], 0x08002002)
	binary.LittleEndian.PutUint32(buf[32:], 0x3f800000) // S0 = 1.0f, bit pattern only

	mem := fakeMemory{base: sp, data: buf}
	ef, terr := readExceptionFrame(sp, 0xFFFFFFED, mem)
	require.Nil(t, terr)
	require.Equal(t, uint64(0x08002002), ef.ReturnAddress)
	require.Equal(t, extendedFrameWords, ef.frameWords)
	require.Equal(t, basicFrameWords+extendedExtraWords, extendedFrameWords)
	require.Equal(t, sp+uint64(extendedFrameWords)*4, ef.callerSP(sp))
	require.Equal(t, uint64(0x3f800000), ef.FP[0])
}
