package imprint

// UnknownLength is the length hint for sequences and maps whose size is not
// known when they are opened.
const UnknownLength = -1

// Serializable is implemented by values that can describe their own shape.
//
// Serialize must issue exactly one value into s: a scalar call, a payload call
// (Some, NewtypeStruct, NewtypeVariant) or a Begin call followed by its
// children and a matching End. Children are handed over as Serializable values
// so the visitor can observe where each one starts and ends.
type Serializable interface {
	Serialize(s Serializer) error
}

// SerializeFunc adapts an ordinary function to Serializable.
type SerializeFunc func(s Serializer) error

// Serialize calls f(s).
func (f SerializeFunc) Serialize(s Serializer) error {
	return f(s)
}

// Serializer is the structural visitor protocol: the fixed set of calls a value
// uses to describe itself.
//
// Every method returns an error. A driving value must stop and return the
// first error it receives; protocol violations are reported this way, and in
// ShortCircuit mode so are the value errors of its children.
type Serializer interface {
	// HumanReadable reports whether values should prefer a readable form
	// (a timestamp as text rather than a number, for instance).
	HumanReadable() bool

	Bool(v bool) error
	Int8(v int8) error
	Int16(v int16) error
	Int32(v int32) error
	Int64(v int64) error
	Uint8(v uint8) error
	Uint16(v uint16) error
	Uint32(v uint32) error
	Uint64(v uint64) error
	Float32(v float32) error
	Float64(v float64) error
	Char(v rune) error
	String(v string) error
	Bytes(v []byte) error

	// None records an absent optional value.
	None() error
	// Some records a present optional value.
	Some(v Serializable) error
	// Unit records the empty value.
	Unit() error

	UnitStruct(name string) error
	UnitVariant(name string, index uint32, variant string) error
	NewtypeStruct(name string, v Serializable) error
	NewtypeVariant(name string, index uint32, variant string, v Serializable) error

	// BeginSeq opens a sequence. hint may be UnknownLength.
	BeginSeq(hint int) error
	BeginTuple(n int) error
	BeginTupleStruct(name string, n int) error
	BeginTupleVariant(name string, index uint32, variant string, n int) error
	// BeginMap opens a map. hint may be UnknownLength.
	BeginMap(hint int) error
	BeginStruct(name string, n int) error
	BeginStructVariant(name string, index uint32, variant string, n int) error

	// Element adds the next element of a sequence, tuple, tuple struct or
	// tuple variant.
	Element(v Serializable) error
	// MapKey adds the key of the next map entry.
	MapKey(k Serializable) error
	// MapValue adds the value for the most recent key.
	MapValue(v Serializable) error
	// Entry adds a key and its value.
	Entry(k, v Serializable) error
	// Field adds a named field of a struct or struct variant.
	Field(name string, v Serializable) error
	// SkipField declares a field that is deliberately not written.
	SkipField(name string) error

	// End closes the most recently opened container.
	End() error
}
