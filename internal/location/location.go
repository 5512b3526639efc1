package location

import (
	"debug/dwarf"

	delveop "github.com/go-delve/delve/pkg/dwarf/op"
	"github.com/go-delve/delve/pkg/dwarf/loclist"
	"github.com/tweedegolf/stackdump-sub000/internal/tracerr"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// EvaluateLocation resolves a DW_AT_location attribute field at the
// given pc. A plain exprloc is evaluated directly; a location-list
// pointer is first narrowed to the entry whose [LowPC, HighPC) range
// covers pc — if none does, the variable simply isn't live here, which
// is a VariableDataError (NoDataAvailableAt), not a trace-aborting
// error.
func EvaluateLocation(field *dwarf.Field, pc uint64, locSection []byte, staticBase uint64, ptrSize int, regs delveop.DwarfRegisters, mem MemoryReader) (uint64, *typevalue.VariableDataError, *tracerr.Error) {
	switch field.Class {
	case dwarf.ClassExprLoc:
		instr, ok := field.Val.([]byte)
		if !ok {
			return 0, nil, tracerr.NewWrongAttributeValueType("DW_AT_location", "exprloc")
		}
		addr, terr := EvaluateExpression(instr, regs, ptrSize, mem)
		if terr != nil && terr.Kind == tracerr.LocationEvaluationStepNotImplemented {
			return 0, typevalue.NewUnimplementedLocationEvaluationStep(terr.Message), nil
		}
		return addr, nil, terr

	case dwarf.ClassLocListPtr:
		off, ok := toInt(field.Val)
		if !ok {
			return 0, nil, tracerr.NewWrongAttributeValueType("DW_AT_location", "loclistptr")
		}
		if len(locSection) == 0 {
			return 0, typevalue.NewNoDataAvailable(), nil
		}

		rdr := loclist.NewDwarf2Reader(locSection, ptrSize)
		rdr.Seek(int(off))
		var base = staticBase
		var entry loclist.Entry
		for rdr.Next(&entry) {
			if entry.BaseAddressSelection() {
				base = entry.HighPC + staticBase
				continue
			}
			low, high := entry.LowPC+base, entry.HighPC+base
			if pc >= low && pc < high {
				addr, terr := EvaluateExpression(entry.Instr, regs, ptrSize, mem)
				if terr != nil && terr.Kind == tracerr.LocationEvaluationStepNotImplemented {
					return 0, typevalue.NewUnimplementedLocationEvaluationStep(terr.Message), nil
				}
				return addr, nil, terr
			}
		}
		return 0, typevalue.NewNoDataAvailableAt("no location list range covers the current pc"), nil

	default:
		return 0, nil, tracerr.NewWrongAttributeValueType("DW_AT_location", field.Class.String())
	}
}

func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
