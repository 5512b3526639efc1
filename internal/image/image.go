// Package image opens the unstripped target executable and exposes the
// sections the rest of this repo needs: DWARF debug info, the ELF
// symbol table (for the static-variable filter), and the
// raw call-frame-information sections the unwinder needs. It is a
// narrow replacement for _examples/golang-debug/internal/core's
// Process.readDebugInfo, which opened a live core dump's many backing
// files; here there is exactly one file, the firmware image, and no
// process memory mapping to resolve it against.
package image

import (
	"debug/dwarf"
	"debug/elf"

	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

// Image is the opened firmware ELF plus the pieces extracted from it.
type Image struct {
	file *elf.File

	DWARF   *dwarf.Data
	Symbols []elf.Symbol

	DebugFrame []byte // .debug_frame, used for call frame information
	EhFrame    []byte // .eh_frame, preferred when present
	DebugLoc   []byte // .debug_loc, DWARF <=4 location lists

	VectorTable []byte // .vector_table, Arm only: initial SP + reset handler address
}

// Open reads path as an ELF file and extracts the sections this repo's
// trace orchestrator and unwinder need. A missing .debug_info section
// is an immediate error; a missing frame section is not, since
// EhFrame/DebugFrame are checked independently by the caller.
func Open(path string) (*Image, *tracerr.Error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, tracerr.NewObjectReadError(err)
	}

	d, err := f.DWARF()
	if err != nil {
		return nil, tracerr.NewDebugParseError(err)
	}

	syms, err := f.Symbols()
	if err != nil {
		// A fully stripped symbol table still leaves DWARF readable;
		// the static-variable filter just has nothing to filter.
		syms = nil
	}

	img := &Image{
		file:        f,
		DWARF:       d,
		Symbols:     syms,
		DebugFrame:  sectionData(f, ".debug_frame"),
		EhFrame:     sectionData(f, ".eh_frame"),
		DebugLoc:    sectionData(f, ".debug_loc"),
		VectorTable: sectionData(f, ".vector_table"),
	}
	return img, nil
}

// SectionRange returns the [low, high) address range of the named
// section, or ok=false if the section is absent.
func (img *Image) SectionRange(name string) (low, high uint64, ok bool) {
	sec := img.file.Section(name)
	if sec == nil {
		return 0, 0, false
	}
	return sec.Addr, sec.Addr + sec.Size, true
}

// SectionAt returns the section a symbol table's Section index
// identifies, or ok=false for one of the reserved indices (SHN_UNDEF,
// SHN_ABS, SHN_COMMON) that name no real section.
func (img *Image) SectionAt(idx elf.SectionIndex) (*elf.Section, bool) {
	if idx <= 0 || int(idx) >= len(img.file.Sections) {
		return nil, false
	}
	return img.file.Sections[idx], true
}

// SymbolByName returns the symbol with the given name, if any; used to
// resolve a variable's DW_AT_linkage_name against the symbol table.
func (img *Image) SymbolByName(name string) (elf.Symbol, bool) {
	for _, s := range img.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return elf.Symbol{}, false
}

// SymbolAt returns the symbol whose address range contains addr, if any.
func (img *Image) SymbolAt(addr uint64) (elf.Symbol, bool) {
	for _, s := range img.Symbols {
		size := s.Size
		if size == 0 {
			size = 1
		}
		if addr >= s.Value && addr < s.Value+size {
			return s, true
		}
	}
	return elf.Symbol{}, false
}

func sectionData(f *elf.File, name string) []byte {
	sec := f.Section(name)
	if sec == nil {
		return nil
	}
	data, err := sec.Data()
	if err != nil {
		return nil
	}
	return data
}

// EntryPoint returns the ELF entry point address (the reset vector, on
// a Cortex-M firmware image).
func (img *Image) EntryPoint() uint64 {
	return img.file.Entry
}

// Close releases the underlying file.
func (img *Image) Close() error {
	return img.file.Close()
}
