// Package location evaluates DWARF location expressions and location
// lists against a captured register/memory snapshot, producing either
// an address/register result or a typevalue.VariableDataError — this
// package never returns a trace-aborting error for "this variable isn't
// available here", only for structurally broken DWARF — grounded on
// original_source/trace/src/variables/mod.rs's
// evaluate_location/evaluate_expression/get_piece_data.
package location

// MemoryReader is the read surface the stack program's DW_OP_deref-style
// operations need; core.DeviceMemory implements it.
type MemoryReader interface {
	ReadSlice(start, end uint64) []byte
}
