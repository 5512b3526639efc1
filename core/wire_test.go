package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripMemoryRegion(t *testing.T) {
	var buf bytes.Buffer
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, EncodeMemoryRegion(&buf, 0x2000_0000, data))

	mem := NewDeviceMemory()
	require.NoError(t, DecodeSnapshot(&buf, mem, 4))

	got := mem.ReadSlice(0x2000_0000, 0x2000_0008)
	require.Equal(t, data, got)
}

func TestRoundTripRegisterData(t *testing.T) {
	var buf bytes.Buffer
	values := []uint64{0x11, 0x22, 0x33, 0x44}
	require.NoError(t, EncodeRegisterData(&buf, 4, 4, values))

	mem := NewDeviceMemory()
	require.NoError(t, DecodeSnapshot(&buf, mem, 4))

	for i, want := range values {
		got, err := mem.Register(uint16(4 + i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRoundTripMultipleRecordsBackToBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRegisterData(&buf, 0, 4, []uint64{1, 2, 3}))
	require.NoError(t, EncodeMemoryRegion(&buf, 0x1000, []byte{9, 9}))
	require.NoError(t, EncodeRegisterData(&buf, 13, 4, []uint64{0xdead}))

	mem := NewDeviceMemory()
	require.NoError(t, DecodeSnapshot(&buf, mem, 4))

	v, err := mem.Register(1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), v)

	sp, err := mem.Register(13)
	require.NoError(t, err)
	require.Equal(t, uint64(0xdead), sp)

	require.Equal(t, []byte{9, 9}, mem.ReadSlice(0x1000, 0x1002))
}

func TestUnknownRecordIdentifierIsAFormatError(t *testing.T) {
	mem := NewDeviceMemory()
	err := DecodeSnapshot(bytes.NewReader([]byte{0xFF}), mem, 4)
	require.Error(t, err)
}

func TestMissingRegisterError(t *testing.T) {
	mem := NewDeviceMemory()
	_, err := mem.Register(5)
	require.Error(t, err)
	var mre *MissingRegisterError
	require.ErrorAs(t, err, &mre)
}

func TestReadSliceNoPartialReadAcrossRegionBoundaries(t *testing.T) {
	mem := NewDeviceMemory()
	mem.AddMemoryRegion(NewMemoryRegion(0x1000, []byte{1, 2, 3, 4}))
	mem.AddMemoryRegion(NewMemoryRegion(0x1004, []byte{5, 6, 7, 8}))

	// Spans both regions: no single region covers it, so this must be nil
	// rather than silently stitched together.
	require.Nil(t, mem.ReadSlice(0x1002, 0x1006))
	require.Equal(t, []byte{1, 2, 3, 4}, mem.ReadSlice(0x1000, 0x1004))
}
