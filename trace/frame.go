// Package trace is the top-level orchestrator: given a captured
// DeviceMemory snapshot and the firmware's executable, it drives a
// platform.Unwinder one frame at a time, resolving every frame's
// function name, source location, and locally visible variables along
// the way, and finishes with one synthetic frame of static variables.
// Grounded on original_source/trace/src/platform/mod.rs's trace/
// add_current_frames and original_source/trace/src/variables/mod.rs's
// find_static_variables.
package trace

import (
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// Kind is the role a Frame plays in the reconstructed call stack.
type Kind int

const (
	// Function is an ordinary, non-inlined call frame.
	Function Kind = iota
	// InlineFunction is a call frame that the compiler inlined into its
	// caller; it shares the caller's registers and is always followed,
	// in the output, by the Function frame (or another InlineFunction
	// frame) it was inlined into.
	InlineFunction
	// Exception retroactively marks the frame that was interrupted by a
	// hardware exception (the kind the unwinder reports the *previous*
	// frame as, once it has consumed the stacked exception context).
	Exception
	// Corrupted marks the point where unwinding could no longer trust
	// the stack; Message explains why.
	Corrupted
	// Static is the one synthetic frame appended after unwinding ends,
	// holding every file/namespace-scope variable this executable
	// defines.
	Static
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case InlineFunction:
		return "inline_function"
	case Exception:
		return "exception"
	case Corrupted:
		return "corrupted"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// SourceLocation is a file/line/column triple; File is empty when the
// line program carries no source position for this address.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// VariableKind distinguishes the few different roles a Variable plays.
type VariableKind struct {
	ZeroSized bool
	Inlined   bool
	Parameter bool
}

// Variable is one decoded local, parameter, or static, with its fully
// filled value tree.
type Variable struct {
	Name      string
	Kind      VariableKind
	Location  SourceLocation
	TypeValue *typevalue.TypeValueTree
}

// Frame is one entry of the reconstructed call stack.
type Frame struct {
	FunctionName string
	Location     SourceLocation
	Kind         Kind
	Message      string // meaningful only when Kind == Corrupted
	Variables    []Variable
}
