// Package cortexm implements platform.Unwinder for ARM Cortex-M cores.
// It is grounded on original_source/trace/src/platform/cortex_m/mod.rs;
// delve's pkg/dwarf/regnum package only covers AMD64/ARM64/386, so the
// 32-bit ARM DWARF register numbers are defined locally here.
package cortexm

// DWARF register numbers for the ARM EABI, R0-R15 mapping directly onto
// DWARF regnum 0-15 (AADWARF32 §3.1).
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	SP // R13
	LR // R14
	PC // R15
)

// THUMBBit is bit 0 of an address used as a code pointer on Thumb-only
// cores: always set on a valid instruction address, and masked off
// before comparing two such addresses for equality.
const THUMBBit = 1

// S0 is the DWARF register number of the first single-precision VFP
// register (AADWARF32 §3.1: S0-S31 occupy 64-95); an extended exception
// frame stacks S0-S15 (not the double-precision D registers) alongside
// the integer context, so the exception frame reader uses S0+i for the
// i'th stacked FPU single.
const S0 = 64
