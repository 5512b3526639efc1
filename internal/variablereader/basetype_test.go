package variablereader

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBaseTypeUnsigned(t *testing.T) {
	v, verr := decodeBaseType(ateUnsigned, []byte{0x2A, 0x00, 0x00, 0x00})
	require.Nil(t, verr)
	require.Equal(t, big.NewInt(42), v.Uint)
}

func TestDecodeBaseTypeSignedNegative(t *testing.T) {
	// -1 as a 32-bit two's complement little-endian value.
	v, verr := decodeBaseType(ateSigned, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	require.Nil(t, verr)
	require.Equal(t, big.NewInt(-1), v.Int)
}

func TestDecodeBaseTypeBool(t *testing.T) {
	v, verr := decodeBaseType(ateBoolean, []byte{0x01})
	require.Nil(t, verr)
	require.True(t, v.Bool)
}

func TestDecodeBaseTypeFloat32(t *testing.T) {
	// 1.5f little-endian.
	v, verr := decodeBaseType(ateFloat, []byte{0x00, 0x00, 0xC0, 0x3F})
	require.Nil(t, verr)
	require.InDelta(t, 1.5, v.Float, 0.0001)
}

func TestDecodeBaseTypeUnsupportedEncoding(t *testing.T) {
	_, verr := decodeBaseType(0x99, []byte{0x00})
	require.NotNil(t, verr)
}

func TestLeBytesToBigInt128Bit(t *testing.T) {
	data := make([]byte, 16)
	data[0] = 0x01
	got := leBytesToBigInt(data, false)
	require.Equal(t, big.NewInt(1), got)
}
