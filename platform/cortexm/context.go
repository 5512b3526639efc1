package cortexm

import (
	"encoding/binary"

	"github.com/go-delve/delve/pkg/dwarf/frame"

	"github.com/tweedegolf/stackdump-sub000/internal/image"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

// Context is everything the unwinder needs from the executable, derived
// once at construction rather than re-read on every step: the parsed
// call frame information, the reset vector's address range (so the
// orchestrator can recognize "we've unwound back to startup"), and the
// .text range (used by the termination heuristic for a pc outside it).
type Context struct {
	fdes frame.FrameDescriptionEntries

	resetLow, resetHigh uint64
	textLow, textHigh   uint64
}

// NewContext parses img's .debug_frame (preferring .eh_frame, absent on
// this embedded target, when present) and resolves the reset vector's
// address range from its .vector_table section plus symbol table.
func NewContext(img *image.Image) (*Context, *tracerr.Error) {
	frameSection := img.EhFrame
	if frameSection == nil {
		frameSection = img.DebugFrame
	}
	if frameSection == nil {
		return nil, tracerr.NewMissingElfSection(".debug_frame")
	}
	fdes, err := frame.Parse(frameSection, binary.LittleEndian, 0, 4, 0)
	if err != nil {
		return nil, tracerr.NewDebugParseError(err)
	}

	textLow, textHigh, ok := img.SectionRange(".text")
	if !ok {
		return nil, tracerr.NewMissingElfSection(".text")
	}

	vt := img.VectorTable
	if vt == nil {
		return nil, tracerr.NewMissingElfSection(".vector_table")
	}
	resetLow, resetHigh := resetVectorRange(img, vt)

	return &Context{
		fdes:     fdes,
		resetLow: resetLow, resetHigh: resetHigh,
		textLow: textLow, textHigh: textHigh,
	}, nil
}

// resetVectorRange reads the reset handler address out of word 1 of the
// vector table (word 0 is the initial stack pointer) and looks up its
// enclosing symbol's address range; absent a symbol, it falls back to a
// zero-width range at the address alone.
func resetVectorRange(img *image.Image, vectorTable []byte) (low, high uint64) {
	if len(vectorTable) < 8 {
		return 0, 0
	}
	resetAddr := uint64(binary.LittleEndian.Uint32(vectorTable[4:8])) &^ 1 // strip THUMB_BIT
	if sym, ok := img.SymbolAt(resetAddr); ok {
		size := sym.Size
		if size == 0 {
			size = 1
		}
		return sym.Value, sym.Value + size
	}
	return resetAddr, resetAddr
}
