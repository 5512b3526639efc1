package core

import "encoding/binary"

// RegisterBank is a contiguous run of registers captured together, keyed
// by a starting DWARF register number. Register width is fixed per
// snapshot (16 bits for AVR, 32 bits for Cortex-M); values are stored
// widened to uint64 internally and truncated on the way out.
type RegisterBank struct {
	startingRegister uint16
	width            int // bytes per register, as captured
	values           []uint64
}

// NewRegisterBank creates a bank covering registers
// [startingRegister, startingRegister+len(values)), each width bytes wide.
func NewRegisterBank(startingRegister uint16, width int, values []uint64) RegisterBank {
	return RegisterBank{startingRegister: startingRegister, width: width, values: values}
}

// covers reports whether this bank supplies the given register id.
func (b *RegisterBank) covers(id uint16) bool {
	if id < b.startingRegister {
		return false
	}
	return int(id-b.startingRegister) < len(b.values)
}

func (b *RegisterBank) get(id uint16) uint64 {
	return b.values[id-b.startingRegister]
}

func (b *RegisterBank) set(id uint16, v uint64) {
	b.values[id-b.startingRegister] = v
}

// Count is the number of registers in the bank.
func (b *RegisterBank) Count() int { return len(b.values) }

// Width is the captured register width in bytes.
func (b *RegisterBank) Width() int { return b.width }

// Start is the first DWARF register number the bank supplies.
func (b *RegisterBank) Start() uint16 { return b.startingRegister }

// Value returns the raw value of the register at the given index within
// the bank (not a register id), widened to uint64.
func (b *RegisterBank) Value(index int) uint64 { return b.values[index] }

// littleEndianWidth decodes a little-endian integer of the given byte
// width from buf.
func littleEndianWidth(buf []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf))
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		return binary.LittleEndian.Uint64(buf)
	default:
		panic("unsupported register width")
	}
}
