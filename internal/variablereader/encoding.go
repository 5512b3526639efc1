// Package variablereader fills an unvalued typevalue.TypeValueTree with
// decoded values by walking it alongside device memory, dispatching by
// archetype, grounded on
// original_source/trace/src/variables/mod.rs's read_variable_data).
package variablereader

// DWARF base type encodings (DW_ATE_*), not exported by debug/dwarf.
// Values are from the DWARF standard and are stable across versions.
const (
	ateAddress      = 0x01
	ateBoolean      = 0x02
	ateFloat        = 0x04
	ateSigned       = 0x05
	ateSignedChar   = 0x06
	ateUnsigned     = 0x07
	ateUnsignedChar = 0x08
	ateUTF          = 0x10
)
