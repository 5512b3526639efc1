package core

import "encoding/binary"

// DeviceMemory is the aggregate snapshot a trace is computed from: a set
// of register banks and a set of memory regions. Lookups are first-match
// over the order regions/banks were added; overlap is allowed but not
// expected.
type DeviceMemory struct {
	regionsList []MemoryRegion
	banks       []RegisterBank
}

// NewDeviceMemory creates an empty snapshot.
func NewDeviceMemory() *DeviceMemory {
	return &DeviceMemory{}
}

// AddMemoryRegion appends a region to the snapshot.
func (d *DeviceMemory) AddMemoryRegion(r MemoryRegion) {
	d.regionsList = append(d.regionsList, r)
}

// AddRegisterData appends a register bank to the snapshot.
func (d *DeviceMemory) AddRegisterData(b RegisterBank) {
	d.banks = append(d.banks, b)
}

// ReadSlice returns the bytes covering [start, end) from the first
// region that contains the whole range, or nil if none does.
func (d *DeviceMemory) ReadSlice(start, end uint64) []byte {
	for i := range d.regionsList {
		if s := d.regionsList[i].readSlice(start, end); s != nil {
			return s
		}
	}
	return nil
}

// ReadU8 reads a single byte at addr.
func (d *DeviceMemory) ReadU8(addr uint64) (byte, *MemoryReadError) {
	s := d.ReadSlice(addr, addr+1)
	if s == nil {
		return 0, &MemoryReadError{Start: addr, Length: 1}
	}
	return s[0], nil
}

// ReadUword reads a width-byte little-endian unsigned integer at addr.
func (d *DeviceMemory) ReadUword(addr uint64, width int) (uint64, *MemoryReadError) {
	s := d.ReadSlice(addr, addr+uint64(width))
	if s == nil {
		return 0, &MemoryReadError{Start: addr, Length: uint64(width)}
	}
	return littleEndianWidth(s, width), nil
}

// ReadU32 reads a 32-bit little-endian unsigned integer at addr.
func (d *DeviceMemory) ReadU32(addr uint64) (uint32, *MemoryReadError) {
	v, err := d.ReadUword(addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Register returns the current value of a register, widened to uint64.
func (d *DeviceMemory) Register(id uint16) (uint64, *MissingRegisterError) {
	for i := range d.banks {
		if d.banks[i].covers(id) {
			return d.banks[i].get(id), nil
		}
	}
	return 0, &MissingRegisterError{Register: id}
}

// SetRegister writes a new value for a register, returning
// MissingRegisterError if no bank supplies it.
func (d *DeviceMemory) SetRegister(id uint16, value uint64) *MissingRegisterError {
	for i := range d.banks {
		if d.banks[i].covers(id) {
			d.banks[i].set(id, value)
			return nil
		}
	}
	return &MissingRegisterError{Register: id}
}

// RegisterBytes returns the native-endian byte representation of a
// register's current value, width bytes wide. Used by the location
// evaluator when a DWARF piece names a register directly.
func (d *DeviceMemory) RegisterBytes(id uint16, width int) ([]byte, *MissingRegisterError) {
	v, err := d.Register(id)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(buf, v)
	default:
		panic("unsupported register width")
	}
	return buf, nil
}
