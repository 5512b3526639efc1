// Package tracerr defines TraceError, the call-aborting error family
// used across the DWARF type builder, location evaluator, and platform
// unwinder. Per-variable errors that must never abort a trace are
// typevalue.VariableDataError instead.
package tracerr

import (
	"fmt"
)

// Kind tags which of the fixed set of trace-aborting conditions
// occurred.
type Kind int

const (
	MissingElfSection Kind = iota
	ObjectReadError
	IOError
	MemoryReadError
	DebugParseError
	MissingAttribute
	WrongAttributeValueType
	TagNotImplemented
	OperationNotImplemented
	ExpectedChildNotPresent
	UnknownFrameBase
	DwarfUnitNotFound
	NumberConversionError
	MissingRegister
	MissingMemory
	UnexpectedMemberTag
	UnexpectedPointerClass
	LocationEvaluationStepNotImplemented
	VariableDataError
)

// Error is the single concrete TraceError type; Kind selects which
// fields are meaningful, mirroring the payload-per-variant shape of the
// enum it's grounded on (original_source/trace/src/error.rs).
type Error struct {
	Kind Kind

	Section string // MissingElfSection
	Message string // generic free-text detail

	EntryDebugInfoOffset uint64 // MissingAttribute, TagNotImplemented
	EntryTag             string // MissingAttribute, ExpectedChildNotPresent, UnexpectedMemberTag
	AttributeName        string // MissingAttribute, WrongAttributeValueType
	ValueTypeName        string // WrongAttributeValueType

	PC uint64 // DwarfUnitNotFound

	MemberName string // UnexpectedMemberTag
	MemberTag  string // UnexpectedMemberTag

	PointerName string // UnexpectedPointerClass
	ClassValue  int64  // UnexpectedPointerClass

	Address uint64 // MissingMemory

	Wrapped error // ObjectReadError, IOError, MemoryReadError, DebugParseError, MissingRegister, VariableDataError
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingElfSection:
		return fmt.Sprintf("the elf file does not contain the required `%s` section", e.Section)
	case ObjectReadError:
		return fmt.Sprintf("the elf file could not be read: %v", e.Wrapped)
	case IOError:
		return fmt.Sprintf("an IO error occurred: %v", e.Wrapped)
	case MemoryReadError:
		return fmt.Sprintf("some memory could not be read: %v", e.Wrapped)
	case DebugParseError:
		return fmt.Sprintf("some debug information could not be parsed: %v", e.Wrapped)
	case MissingAttribute:
		return fmt.Sprintf("an entry (%s (@ .debug_info offset %#x)) is missing an expected attribute: %s",
			e.EntryTag, e.EntryDebugInfoOffset, e.AttributeName)
	case WrongAttributeValueType:
		return fmt.Sprintf("an attribute (%s) has the wrong value type: %s", e.AttributeName, e.ValueTypeName)
	case TagNotImplemented:
		return fmt.Sprintf("the tag `%s` @%#x has not been implemented yet", e.EntryTag, e.EntryDebugInfoOffset)
	case OperationNotImplemented:
		return fmt.Sprintf("an operation is not implemented yet: %s", e.Message)
	case ExpectedChildNotPresent:
		return fmt.Sprintf("a child was expected for %s, but it was not there", e.EntryTag)
	case UnknownFrameBase:
		return "the frame base is not known yet"
	case DwarfUnitNotFound:
		return fmt.Sprintf("the dwarf unit for a `pc` of %#x could not be found", e.PC)
	case NumberConversionError:
		return "a number could not be converted to another type"
	case MissingRegister:
		return fmt.Sprintf("register is required, but is not available in the device memory: %v", e.Wrapped)
	case MissingMemory:
		return fmt.Sprintf("memory was expected to be available at address %#x, but wasn't", e.Address)
	case UnexpectedMemberTag:
		return fmt.Sprintf("%s of %s has unexpected tag %s", e.MemberName, e.EntryTag, e.MemberTag)
	case UnexpectedPointerClass:
		return fmt.Sprintf("a pointer with the name %s has an unexpected class value of %d", e.PointerName, e.ClassValue)
	case LocationEvaluationStepNotImplemented:
		return fmt.Sprintf("a required step of the location evaluation logic has not been implemented yet: %s", e.Message)
	case VariableDataError:
		return fmt.Sprintf("a variable couldn't be read: %v", e.Wrapped)
	default:
		return "unknown trace error"
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error { return e.Wrapped }

func NewMissingElfSection(section string) *Error {
	return &Error{Kind: MissingElfSection, Section: section}
}

func NewObjectReadError(err error) *Error { return &Error{Kind: ObjectReadError, Wrapped: err} }
func NewIOError(err error) *Error         { return &Error{Kind: IOError, Wrapped: err} }
func NewMemoryReadError(err error) *Error { return &Error{Kind: MemoryReadError, Wrapped: err} }
func NewDebugParseError(err error) *Error { return &Error{Kind: DebugParseError, Wrapped: err} }

func NewMissingAttribute(entryTag string, offset uint64, attribute string) *Error {
	return &Error{Kind: MissingAttribute, EntryTag: entryTag, EntryDebugInfoOffset: offset, AttributeName: attribute}
}

func NewWrongAttributeValueType(attribute, observedType string) *Error {
	return &Error{Kind: WrongAttributeValueType, AttributeName: attribute, ValueTypeName: observedType}
}

func NewTagNotImplemented(tag string, offset uint64) *Error {
	return &Error{Kind: TagNotImplemented, EntryTag: tag, EntryDebugInfoOffset: offset}
}

func NewOperationNotImplemented(message string) *Error {
	return &Error{Kind: OperationNotImplemented, Message: message}
}

func NewExpectedChildNotPresent(entryTag string) *Error {
	return &Error{Kind: ExpectedChildNotPresent, EntryTag: entryTag}
}

func NewUnknownFrameBase() *Error { return &Error{Kind: UnknownFrameBase} }

func NewDwarfUnitNotFound(pc uint64) *Error { return &Error{Kind: DwarfUnitNotFound, PC: pc} }

func NewNumberConversionError() *Error { return &Error{Kind: NumberConversionError} }

func NewMissingRegister(err error) *Error { return &Error{Kind: MissingRegister, Wrapped: err} }

func NewMissingMemory(address uint64) *Error { return &Error{Kind: MissingMemory, Address: address} }

func NewUnexpectedMemberTag(objectName, memberName, memberTag string) *Error {
	return &Error{Kind: UnexpectedMemberTag, EntryTag: objectName, MemberName: memberName, MemberTag: memberTag}
}

func NewUnexpectedPointerClass(pointerName string, classValue int64) *Error {
	return &Error{Kind: UnexpectedPointerClass, PointerName: pointerName, ClassValue: classValue}
}

func NewLocationEvaluationStepNotImplemented(message string) *Error {
	return &Error{Kind: LocationEvaluationStepNotImplemented, Message: message}
}

func NewVariableDataError(err error) *Error { return &Error{Kind: VariableDataError, Wrapped: err} }
