// Package core holds the typed containers a captured snapshot is built
// from: memory regions, register banks, and the DeviceMemory that
// aggregates them for lookup during tracing.
package core

// MemoryRegion is a contiguous, immutable span of bytes starting at a
// fixed address. It may come from a captured stack, from a loadable
// section of the executable (.text, read-only data, read-only strings),
// or from another captured snapshot.
type MemoryRegion struct {
	start uint64
	data  []byte
}

// NewMemoryRegion creates a region owning the given bytes.
func NewMemoryRegion(start uint64, data []byte) MemoryRegion {
	return MemoryRegion{start: start, data: data}
}

// Min is the first address covered by the region.
func (m *MemoryRegion) Min() uint64 { return m.start }

// Max is one past the last address covered by the region.
func (m *MemoryRegion) Max() uint64 { return m.start + uint64(len(m.data)) }

// Size is the number of bytes the region covers.
func (m *MemoryRegion) Size() uint64 { return uint64(len(m.data)) }

// contains reports whether the half-open range [start, end) lies
// entirely within the region.
func (m *MemoryRegion) contains(start, end uint64) bool {
	return start >= m.start && end <= m.Max() && start <= end
}

// readSlice returns the bytes covering [start, end), or nil if the range
// is not entirely contained in this region.
func (m *MemoryRegion) readSlice(start, end uint64) []byte {
	if !m.contains(start, end) {
		return nil
	}
	lo := start - m.start
	hi := end - m.start
	return m.data[lo:hi]
}
