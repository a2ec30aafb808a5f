package imprint

import (
	"bytes"
	"math"
)

// Equal reports whether a and b are deeply equal trees.
//
// Comparison is order-sensitive for elements, entries and fields. Floats are
// compared by bit pattern, so NaN equals an identical NaN and 0 differs from -0.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Char, String, Unit, UnitStruct, UnitVariant, Error:
		return a == b
	case Float32:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float32)))
	case Float64:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Float64)))
	case Bytes:
		return bytes.Equal(x, b.(Bytes))
	case Option:
		return Equal(x.Some, b.(Option).Some)
	case NewtypeStruct:
		y := b.(NewtypeStruct)
		return x.Name == y.Name && Equal(x.Inner, y.Inner)
	case NewtypeVariant:
		y := b.(NewtypeVariant)
		return x.Variant == y.Variant && Equal(x.Inner, y.Inner)
	case Seq:
		return equalElems(x.Elems, b.(Seq).Elems)
	case Tuple:
		return equalElems(x.Elems, b.(Tuple).Elems)
	case TupleStruct:
		y := b.(TupleStruct)
		return x.Name == y.Name && equalElems(x.Elems, y.Elems)
	case TupleVariant:
		y := b.(TupleVariant)
		return x.Variant == y.Variant && equalElems(x.Elems, y.Elems)
	case Map:
		y := b.(Map)
		if len(x.Entries) != len(y.Entries) {
			return false
		}
		for i := range x.Entries {
			if !Equal(x.Entries[i].Key, y.Entries[i].Key) || !Equal(x.Entries[i].Value, y.Entries[i].Value) {
				return false
			}
		}
		return true
	case Struct:
		y := b.(Struct)
		return x.Name == y.Name && equalFields(x.Fields, y.Fields)
	case StructVariant:
		y := b.(StructVariant)
		return x.Variant == y.Variant && equalFields(x.Fields, y.Fields)
	}
	return false
}

func equalElems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}
