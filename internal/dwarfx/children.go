package dwarfx

import (
	"debug/dwarf"

	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
)

// Children reads the direct children of the entry at off, not
// descending into grandchildren, mirroring the Next/SkipChildren idiom
// the corpus itself uses for walking a DIE subtree one level at a time
// (_examples/golang-debug/internal/gocore/dwarf.go).
func Children(r *dwarf.Reader, off dwarf.Offset) ([]*dwarf.Entry, *tracerr.Error) {
	r.Seek(off)
	parent, err := r.Next()
	if err != nil {
		return nil, tracerr.NewDebugParseError(err)
	}
	if parent == nil || !parent.Children {
		return nil, nil
	}
	var kids []*dwarf.Entry
	for {
		kid, err := r.Next()
		if err != nil {
			return nil, tracerr.NewDebugParseError(err)
		}
		if kid == nil || kid.Tag == 0 {
			break
		}
		kids = append(kids, kid)
		if kid.Children {
			r.SkipChildren()
		}
	}
	return kids, nil
}

// EntryAt reads the single entry at off without its children.
func EntryAt(r *dwarf.Reader, off dwarf.Offset) (*dwarf.Entry, *tracerr.Error) {
	r.Seek(off)
	e, err := r.Next()
	if err != nil {
		return nil, tracerr.NewDebugParseError(err)
	}
	return e, nil
}
