package variablereader

import (
	"math/big"

	"github.com/tweedegolf/stackdump-sub000/internal/tracelog"
	"github.com/tweedegolf/stackdump-sub000/internal/typevalue"
)

// MemoryReader is the read surface needed to fill a value tree;
// core.DeviceMemory implements it.
type MemoryReader interface {
	ReadSlice(start, end uint64) []byte
}

// ptrSize is the address width of the only platform this repo
// implements (Cortex-M, a 32-bit target).
const ptrSize = 4

// Fill walks tree, setting a Value or VariableDataError at every node,
// reading byte contents from mem starting at addr. tree's own bit range
// is expected to start at 0 (the convention every typebuilder function
// produces for a standalone type), so addr is exactly where tree's first
// bit lives.
func Fill(tree *typevalue.TypeValueTree, addr uint64, mem MemoryReader) {
	fill(tree, addr, mem)
}

func fill(tree *typevalue.TypeValueTree, base uint64, mem MemoryReader) {
	if tree.BitRange.Start%8 != 0 {
		tree.SetError(typevalue.NewOperationNotImplemented("non-byte-aligned bitfield"))
		return
	}
	addr := base + tree.BitRange.Start/8
	sizeBytes := (tree.BitRange.Len() + 7) / 8

	switch tree.VariableType.Archetype.Kind {
	case typevalue.BaseType:
		fillBaseType(tree, addr, sizeBytes, mem)

	case typevalue.Pointer:
		fillPointer(tree, addr, mem)

	case typevalue.Array:
		for _, c := range tree.Children {
			fill(c, addr, mem)
		}
		tree.SetValue(typevalue.Array())

	case typevalue.Typedef:
		if len(tree.Children) != 1 {
			tree.SetError(typevalue.NewNoDataAvailable())
			return
		}
		fill(tree.Children[0], addr, mem)
		tree.SetValue(typevalue.Typedef())

	case typevalue.Enumeration:
		fillEnumeration(tree, addr, sizeBytes, mem)

	case typevalue.Structure, typevalue.Union, typevalue.Class, typevalue.ObjectMemberPointer:
		if isStrSlice(tree) {
			fillStrSlice(tree, addr, mem)
			return
		}
		for _, c := range tree.Children {
			fill(c, addr, mem)
		}
		tree.SetValue(typevalue.Object())

	case typevalue.TaggedUnion:
		if tree.Name == "variants" {
			fillVariants(tree, addr, mem)
		} else {
			for _, c := range tree.Children {
				fill(c, addr, mem)
			}
		}
		tree.SetValue(typevalue.Object())

	case typevalue.TaggedUnionVariant:
		if len(tree.Children) != 1 {
			tree.SetError(typevalue.NewNoDataAvailable())
			return
		}
		fill(tree.Children[0], addr, mem)
		tree.SetValue(typevalue.Object())

	case typevalue.Subroutine:
		tree.SetValue(typevalue.Address(addr))

	default:
		tree.SetError(typevalue.NewOperationNotImplemented("archetype " + tree.VariableType.Archetype.Kind.String()))
	}
}

func fillBaseType(tree *typevalue.TypeValueTree, addr, sizeBytes uint64, mem MemoryReader) {
	data := mem.ReadSlice(addr, addr+sizeBytes)
	if data == nil {
		tracelog.Logger().WithField("address", addr).Warn("base type read falls outside any captured memory region")
		tree.SetError(typevalue.NewNoDataAvailable())
		return
	}
	v, verr := decodeBaseType(tree.VariableType.Archetype.Encoding, data)
	if verr != nil {
		tree.SetError(verr)
		return
	}
	tree.SetValue(v)
}

func fillPointer(tree *typevalue.TypeValueTree, addr uint64, mem MemoryReader) {
	data := mem.ReadSlice(addr, addr+ptrSize)
	if data == nil {
		tracelog.Logger().WithField("address", addr).Warn("pointer read falls outside any captured memory region")
		tree.SetError(typevalue.NewNoDataAvailable())
		return
	}
	ptr := leBytesToUint64(data)
	tree.SetValue(typevalue.Address(ptr))

	if len(tree.Children) == 0 {
		return
	}
	pointee := tree.Children[0]
	if ptr == 0 {
		pointee.SetError(typevalue.NewNullPointer())
		return
	}
	fill(pointee, ptr, mem)
}

func fillEnumeration(tree *typevalue.TypeValueTree, addr, sizeBytes uint64, mem MemoryReader) {
	data := mem.ReadSlice(addr, addr+sizeBytes)
	if data == nil {
		tree.SetError(typevalue.NewNoDataAvailable())
		return
	}
	raw := leBytesToBigInt(data, false)
	matched := false
	for _, c := range tree.Children {
		if c.Value.Int != nil && c.Value.Int.Cmp(raw) == 0 {
			matched = true
		} else {
			c.SetError(typevalue.NewNoDataAvailable())
		}
	}
	if !matched {
		tree.SetError(typevalue.NewNoDataAvailable())
		return
	}
	tree.SetValue(typevalue.Enumeration())
}

// fillVariants reads the discriminant, then decodes whichever variant
// its value matches; absent a match, it falls back to the variant with
// no DW_AT_discr_value (the default arm), if one was built. With
// neither a match nor a default, every variant is left unread — the
// enclosing tagged union itself is still emitted by the caller
// regardless (fill's TaggedUnion case always calls tree.SetValue after
// this returns).
func fillVariants(tree *typevalue.TypeValueTree, addr uint64, mem MemoryReader) {
	var discr *typevalue.TypeValueTree
	var variants []*typevalue.TypeValueTree
	for _, c := range tree.Children {
		if c.Name == "discriminant" {
			discr = c
		} else {
			variants = append(variants, c)
		}
	}
	if discr == nil {
		return
	}
	fill(discr, addr, mem)
	if discr.IsErr() {
		return
	}

	discVal := bigIntFromValue(discr.Value)
	if discVal == nil {
		return
	}

	var defaultVariant *typevalue.TypeValueTree
	matched := false
	for _, v := range variants {
		if !v.VariableType.Archetype.HasDiscriminantValue {
			defaultVariant = v
			continue
		}
		want := big.NewInt(v.VariableType.Archetype.DiscriminantValue)
		if discVal.Cmp(want) == 0 {
			fill(v, addr, mem)
			matched = true
		}
	}
	if !matched && defaultVariant != nil {
		fill(defaultVariant, addr, mem)
	}
}

func bigIntFromValue(v typevalue.Value) *big.Int {
	switch v.Kind {
	case typevalue.VInt:
		return v.Int
	case typevalue.VUint:
		return v.Uint
	default:
		return nil
	}
}
