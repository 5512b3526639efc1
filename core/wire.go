package core

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Record identifiers for the snapshot wire format. The
// exact numeric values only need to be stable and distinct from each
// other; these match the capture-side encoding this engine is paired
// with.
const (
	RecordMemoryRegion byte = 0x01
	RecordRegisterData byte = 0x02
)

// DecodeSnapshot reads a concatenation of MEMORY_REGION and
// REGISTER_DATA records from r until EOF, applying each to mem in order.
// registerWidth is the byte width of a single register on the captured
// platform (2 for AVR, 4 for Cortex-M).
func DecodeSnapshot(r io.Reader, mem *DeviceMemory, registerWidth int) error {
	br := &byteReader{r: r}
	for {
		id, err := br.readByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch id {
		case RecordMemoryRegion:
			region, err := decodeMemoryRegion(br)
			if err != nil {
				return err
			}
			mem.AddMemoryRegion(region)
		case RecordRegisterData:
			bank, err := decodeRegisterData(br, registerWidth)
			if err != nil {
				return err
			}
			mem.AddRegisterData(bank)
		default:
			return fmt.Errorf("core: unknown snapshot record identifier %#x", id)
		}
	}
}

func decodeMemoryRegion(br *byteReader) (MemoryRegion, error) {
	start, err := br.readU64LE()
	if err != nil {
		return MemoryRegion{}, err
	}
	length, err := br.readU64LE()
	if err != nil {
		return MemoryRegion{}, err
	}
	data, err := br.readN(int(length))
	if err != nil {
		return MemoryRegion{}, err
	}
	return NewMemoryRegion(start, data), nil
}

func decodeRegisterData(br *byteReader, width int) (RegisterBank, error) {
	startingID, err := br.readU16LE()
	if err != nil {
		return RegisterBank{}, err
	}
	count, err := br.readU16LE()
	if err != nil {
		return RegisterBank{}, err
	}
	values := make([]uint64, count)
	for i := range values {
		buf, err := br.readN(width)
		if err != nil {
			return RegisterBank{}, err
		}
		values[i] = littleEndianWidth(buf, width)
	}
	return NewRegisterBank(startingID, width, values), nil
}

// EncodeMemoryRegion writes a MEMORY_REGION record. Exposed primarily so
// tests can build round-trip fixtures for the wire format;
// it is the decode side that this engine actually depends on.
func EncodeMemoryRegion(w io.Writer, start uint64, data []byte) error {
	if _, err := w.Write([]byte{RecordMemoryRegion}); err != nil {
		return err
	}
	if err := writeU64LE(w, start); err != nil {
		return err
	}
	if err := writeU64LE(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// EncodeRegisterData writes a REGISTER_DATA record.
func EncodeRegisterData(w io.Writer, startingID uint16, width int, values []uint64) error {
	if _, err := w.Write([]byte{RecordRegisterData}); err != nil {
		return err
	}
	if err := writeU16LE(w, startingID); err != nil {
		return err
	}
	if err := writeU16LE(w, uint16(len(values))); err != nil {
		return err
	}
	for _, v := range values {
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
			return fmt.Errorf("core: unsupported register width %d", width)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writeU64LE(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// byteReader is a tiny unbuffered cursor over an io.Reader that reads
// exact-length chunks, used only by the decoder above.
type byteReader struct {
	r io.Reader
}

func (b *byteReader) readByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.r, buf[:])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return buf[0], err
}

func (b *byteReader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *byteReader) readU16LE() (uint16, error) {
	buf, err := b.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (b *byteReader) readU64LE() (uint64, error) {
	buf, err := b.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}
