package variablereader

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// decodeBaseType interprets data (little-endian, as captured from a
// little-endian Cortex-M target) according to a DW_AT_encoding value.
// Integers use math/big.Int so widths beyond 64 bits (__int128,
// u128/i128) decode without truncation.
func decodeBaseType(encoding int64, data []byte) (typevalue.Value, *typevalue.VariableDataError) {
	switch encoding {
	case ateBoolean:
		if len(data) == 0 {
			return typevalue.Value{}, typevalue.NewInvalidSize(0)
		}
		return typevalue.Bool(data[0] != 0), nil

	case ateSignedChar, ateUnsignedChar:
		if len(data) != 1 {
			return typevalue.Value{}, typevalue.NewInvalidSize(len(data) * 8)
		}
		return typevalue.Char(rune(data[0])), nil

	case ateUTF:
		if len(data) != 4 {
			return typevalue.Value{}, typevalue.NewInvalidSize(len(data) * 8)
		}
		return typevalue.Char(rune(binary.LittleEndian.Uint32(data))), nil

	case ateFloat:
		switch len(data) {
		case 4:
			return typevalue.Float(float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))), nil
		case 8:
			return typevalue.Float(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
		default:
			return typevalue.Value{}, typevalue.NewInvalidSize(len(data) * 8)
		}

	case ateSigned:
		return typevalue.Int(leBytesToBigInt(data, true)), nil

	case ateUnsigned:
		return typevalue.Uint(leBytesToBigInt(data, false)), nil

	case ateAddress:
		if len(data) > 8 {
			return typevalue.Value{}, typevalue.NewInvalidSize(len(data) * 8)
		}
		return typevalue.Address(leBytesToUint64(data)), nil

	default:
		return typevalue.Value{}, typevalue.NewUnsupportedBaseType(encoding)
	}
}

func leBytesToUint64(data []byte) uint64 {
	var buf [8]byte
	copy(buf[:], data)
	return binary.LittleEndian.Uint64(buf[:])
}

// leBytesToBigInt converts a little-endian byte slice of arbitrary width
// into a big.Int, sign-extending the top bit when signed is true.
func leBytesToBigInt(data []byte, signed bool) *big.Int {
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if signed && len(data) > 0 && data[len(data)-1]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8))
		v.Sub(v, mod)
	}
	return v
}
