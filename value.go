package imprint

import "fmt"

// Kind identifies the shape of a captured Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindBytes
	KindUnit
	KindOption
	KindUnitStruct
	KindUnitVariant
	KindNewtypeStruct
	KindNewtypeVariant
	KindSeq
	KindTuple
	KindTupleStruct
	KindTupleVariant
	KindMap
	KindStruct
	KindStructVariant
	KindError
)

var kindNames = [...]string{
	KindBool:           "bool",
	KindInt8:           "i8",
	KindInt16:          "i16",
	KindInt32:          "i32",
	KindInt64:          "i64",
	KindUint8:          "u8",
	KindUint16:         "u16",
	KindUint32:         "u32",
	KindUint64:         "u64",
	KindFloat32:        "f32",
	KindFloat64:        "f64",
	KindChar:           "char",
	KindString:         "string",
	KindBytes:          "bytes",
	KindUnit:           "unit",
	KindOption:         "option",
	KindUnitStruct:     "unit struct",
	KindUnitVariant:    "unit variant",
	KindNewtypeStruct:  "newtype struct",
	KindNewtypeVariant: "newtype variant",
	KindSeq:            "sequence",
	KindTuple:          "tuple",
	KindTupleStruct:    "tuple struct",
	KindTupleVariant:   "tuple variant",
	KindMap:            "map",
	KindStruct:         "struct",
	KindStructVariant:  "struct variant",
	KindError:          "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a node of a captured tree.
//
// The set of implementations is closed: every shape of the serialization data
// model has exactly one concrete type in this package. Consumers switch on the
// concrete type (or on Kind) to read a tree. A finished tree is never modified
// by the capture engine and owns all of its children.
type Value interface {
	fmt.Stringer

	// Kind reports the shape of the node.
	Kind() Kind

	sealed()
}

// Variant identifies one variant of an enum type. The index and the name are
// both kept as supplied by the driving value, even when one implies the other.
type Variant struct {
	Type  string // enum type name
	Index uint32 // variant index
	Name  string // variant name
}

// Scalars.
type (
	Bool    bool
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Float32 float32
	Float64 float64
	Char    rune
	String  string
	Bytes   []byte
)

// Unit is the empty value.
type Unit struct{}

// Option is an optional value. A nil Some means the value is absent.
type Option struct {
	Some Value
}

// None returns an absent Option.
func None() Option { return Option{} }

// Some returns a present Option holding v.
func Some(v Value) Option { return Option{Some: v} }

// IsNone reports whether the option is absent.
func (o Option) IsNone() bool { return o.Some == nil }

// UnitStruct is a named struct with no fields.
type UnitStruct struct {
	Name string
}

// UnitVariant is an enum variant with no payload.
type UnitVariant struct {
	Variant
}

// NewtypeStruct is a named wrapper around a single value.
type NewtypeStruct struct {
	Name  string
	Inner Value
}

// NewtypeVariant is an enum variant wrapping a single value.
type NewtypeVariant struct {
	Variant
	Inner Value
}

// Seq is an ordered sequence of values.
type Seq struct {
	Elems []Value
}

// Tuple is a fixed-size ordered group of values.
type Tuple struct {
	Elems []Value
}

// TupleStruct is a named tuple.
type TupleStruct struct {
	Name  string
	Elems []Value
}

// TupleVariant is an enum variant carrying a tuple.
type TupleVariant struct {
	Variant
	Elems []Value
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map is an ordered list of key/value pairs. Insertion order is preserved and
// duplicate keys are kept.
type Map struct {
	Entries []Entry
}

// Field is one named field of a Struct or StructVariant. A nil Value marks a
// field the driving value declared but skipped.
type Field struct {
	Name  string
	Value Value
}

// Skipped reports whether the field was declared without a value.
func (f Field) Skipped() bool { return f.Value == nil }

// Struct is a named struct with ordered fields.
type Struct struct {
	Name   string
	Fields []Field
}

// StructVariant is an enum variant with ordered named fields.
type StructVariant struct {
	Variant
	Fields []Field
}

// Error stands in for a value whose serialization failed. It only appears in
// trees captured in Persist mode.
type Error struct {
	Message string
}

func (Bool) Kind() Kind           { return KindBool }
func (Int8) Kind() Kind           { return KindInt8 }
func (Int16) Kind() Kind          { return KindInt16 }
func (Int32) Kind() Kind          { return KindInt32 }
func (Int64) Kind() Kind          { return KindInt64 }
func (Uint8) Kind() Kind          { return KindUint8 }
func (Uint16) Kind() Kind         { return KindUint16 }
func (Uint32) Kind() Kind         { return KindUint32 }
func (Uint64) Kind() Kind         { return KindUint64 }
func (Float32) Kind() Kind        { return KindFloat32 }
func (Float64) Kind() Kind        { return KindFloat64 }
func (Char) Kind() Kind           { return KindChar }
func (String) Kind() Kind         { return KindString }
func (Bytes) Kind() Kind          { return KindBytes }
func (Unit) Kind() Kind           { return KindUnit }
func (Option) Kind() Kind         { return KindOption }
func (UnitStruct) Kind() Kind     { return KindUnitStruct }
func (UnitVariant) Kind() Kind    { return KindUnitVariant }
func (NewtypeStruct) Kind() Kind  { return KindNewtypeStruct }
func (NewtypeVariant) Kind() Kind { return KindNewtypeVariant }
func (Seq) Kind() Kind            { return KindSeq }
func (Tuple) Kind() Kind          { return KindTuple }
func (TupleStruct) Kind() Kind    { return KindTupleStruct }
func (TupleVariant) Kind() Kind   { return KindTupleVariant }
func (Map) Kind() Kind            { return KindMap }
func (Struct) Kind() Kind         { return KindStruct }
func (StructVariant) Kind() Kind  { return KindStructVariant }
func (Error) Kind() Kind          { return KindError }

func (Bool) sealed()           {}
func (Int8) sealed()           {}
func (Int16) sealed()          {}
func (Int32) sealed()          {}
func (Int64) sealed()          {}
func (Uint8) sealed()          {}
func (Uint16) sealed()         {}
func (Uint32) sealed()         {}
func (Uint64) sealed()         {}
func (Float32) sealed()        {}
func (Float64) sealed()        {}
func (Char) sealed()           {}
func (String) sealed()         {}
func (Bytes) sealed()          {}
func (Unit) sealed()           {}
func (Option) sealed()         {}
func (UnitStruct) sealed()     {}
func (UnitVariant) sealed()    {}
func (NewtypeStruct) sealed()  {}
func (NewtypeVariant) sealed() {}
func (Seq) sealed()            {}
func (Tuple) sealed()          {}
func (TupleStruct) sealed()    {}
func (TupleVariant) sealed()   {}
func (Map) sealed()            {}
func (Struct) sealed()         {}
func (StructVariant) sealed()  {}
func (Error) sealed()          {}
