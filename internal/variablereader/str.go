package variablereader

import (
	"strings"

	"github.com/tweedegolf/stackdump-sub000/internal/tracelog"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// isStrSlice recognizes the two-member fat-pointer DWARF shape rustc
// emits for &str ("data_ptr" to the first byte, "length" in bytes):
// every other structure is read generically, this one gets decoded
// straight to its bytes instead of displayed as two raw fields.
func isStrSlice(tree *typevalue.TypeValueTree) bool {
	name := tree.VariableType.Name
	if name != "&str" && name != "str" {
		return false
	}
	return len(tree.Children) == 2
}

// fillStrSlice fills the pointer/length members normally, then recovers
// the referenced UTF-8 bytes and replaces the structure's own value with
// a VString, so the structure reads as inline string content rather
// than as a pointer and a length.
func fillStrSlice(tree *typevalue.TypeValueTree, addr uint64, mem MemoryReader) {
	var ptrChild, lenChild *typevalue.TypeValueTree
	for _, c := range tree.Children {
		switch {
		case strings.Contains(c.Name, "ptr"):
			ptrChild = c
		case strings.Contains(c.Name, "len"):
			lenChild = c
		}
	}
	for _, c := range tree.Children {
		fill(c, addr, mem)
	}
	if ptrChild == nil || lenChild == nil || ptrChild.IsErr() || lenChild.IsErr() {
		tracelog.Logger().WithField("name", tree.Name).Warn("&str recovery miss: pointer or length member unreadable")
		tree.SetError(typevalue.NewInvalidPointerData())
		return
	}
	if ptrChild.Value.Kind != typevalue.VAddress {
		tree.SetError(typevalue.NewInvalidPointerData())
		return
	}
	length := bigIntFromValue(lenChild.Value)
	if length == nil || !length.IsUint64() {
		tree.SetError(typevalue.NewInvalidSize(0))
		return
	}
	n := length.Uint64()
	data := mem.ReadSlice(ptrChild.Value.Address, ptrChild.Value.Address+n)
	if data == nil {
		tracelog.Logger().WithField("name", tree.Name).Warn("&str recovery miss: referenced bytes outside any captured memory region")
		tree.SetError(typevalue.NewNoDataAvailable())
		return
	}
	tree.SetValue(typevalue.String(append([]byte(nil), data...), typevalue.Utf8))
}
