package imprint

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Render returns a single-line, human-readable form of v.
//
// The format is meant for test failures and debugging output:
//
//	MyStruct{system_time: Error("SystemTime must be later than UNIX_EPOCH"), normal_string: "this is a string"}
//
// Integers and floats carry their width (i32(7), f64(1.5)), variants render as
// Type::Name@index, skipped fields as <skipped> and a nil Value as <nil>.
func Render(v Value) string {
	var b strings.Builder
	render(&b, v)
	return b.String()
}

func render(b *strings.Builder, v Value) {
	switch n := v.(type) {
	case nil:
		b.WriteString("<nil>")
	case Bool:
		b.WriteString(strconv.FormatBool(bool(n)))
	case Int8:
		writeNumber(b, "i8", strconv.FormatInt(int64(n), 10))
	case Int16:
		writeNumber(b, "i16", strconv.FormatInt(int64(n), 10))
	case Int32:
		writeNumber(b, "i32", strconv.FormatInt(int64(n), 10))
	case Int64:
		writeNumber(b, "i64", strconv.FormatInt(int64(n), 10))
	case Uint8:
		writeNumber(b, "u8", strconv.FormatUint(uint64(n), 10))
	case Uint16:
		writeNumber(b, "u16", strconv.FormatUint(uint64(n), 10))
	case Uint32:
		writeNumber(b, "u32", strconv.FormatUint(uint64(n), 10))
	case Uint64:
		writeNumber(b, "u64", strconv.FormatUint(uint64(n), 10))
	case Float32:
		writeNumber(b, "f32", strconv.FormatFloat(float64(n), 'g', -1, 32))
	case Float64:
		writeNumber(b, "f64", strconv.FormatFloat(float64(n), 'g', -1, 64))
	case Char:
		b.WriteString(strconv.QuoteRune(rune(n)))
	case String:
		b.WriteString(strconv.Quote(string(n)))
	case Bytes:
		b.WriteString("bytes(")
		b.WriteString(hex.EncodeToString(n))
		b.WriteByte(')')
	case Unit:
		b.WriteString("()")
	case Option:
		if n.Some == nil {
			b.WriteString("None")
			return
		}
		b.WriteString("Some(")
		render(b, n.Some)
		b.WriteByte(')')
	case UnitStruct:
		b.WriteString(n.Name)
	case UnitVariant:
		writeVariant(b, n.Variant)
	case NewtypeStruct:
		b.WriteString(n.Name)
		b.WriteByte('(')
		render(b, n.Inner)
		b.WriteByte(')')
	case NewtypeVariant:
		writeVariant(b, n.Variant)
		b.WriteByte('(')
		render(b, n.Inner)
		b.WriteByte(')')
	case Seq:
		writeList(b, '[', ']', n.Elems, false)
	case Tuple:
		writeList(b, '(', ')', n.Elems, true)
	case TupleStruct:
		b.WriteString(n.Name)
		writeList(b, '(', ')', n.Elems, true)
	case TupleVariant:
		writeVariant(b, n.Variant)
		writeList(b, '(', ')', n.Elems, true)
	case Map:
		b.WriteByte('{')
		for i, e := range n.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, e.Key)
			b.WriteString(": ")
			render(b, e.Value)
		}
		b.WriteByte('}')
	case Struct:
		b.WriteString(n.Name)
		writeFields(b, n.Fields)
	case StructVariant:
		writeVariant(b, n.Variant)
		writeFields(b, n.Fields)
	case Error:
		b.WriteString("Error(")
		b.WriteString(strconv.Quote(n.Message))
		b.WriteByte(')')
	}
}

func writeNumber(b *strings.Builder, width, digits string) {
	b.WriteString(width)
	b.WriteByte('(')
	b.WriteString(digits)
	b.WriteByte(')')
}

func writeVariant(b *strings.Builder, v Variant) {
	b.WriteString(v.Type)
	b.WriteString("::")
	b.WriteString(v.Name)
	b.WriteByte('@')
	b.WriteString(strconv.FormatUint(uint64(v.Index), 10))
}

// writeList renders elements between lb and rb. Tuples of one element get
// a trailing comma so they stay distinguishable from newtype wrappers.
func writeList(b *strings.Builder, lb, rb byte, elems []Value, tuple bool) {
	b.WriteByte(lb)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		render(b, e)
	}
	if tuple && len(elems) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(rb)
}

func writeFields(b *strings.Builder, fields []Field) {
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		if f.Value == nil {
			b.WriteString("<skipped>")
			continue
		}
		render(b, f.Value)
	}
	b.WriteByte('}')
}

func (v Bool) String() string           { return Render(v) }
func (v Int8) String() string           { return Render(v) }
func (v Int16) String() string          { return Render(v) }
func (v Int32) String() string          { return Render(v) }
func (v Int64) String() string          { return Render(v) }
func (v Uint8) String() string          { return Render(v) }
func (v Uint16) String() string         { return Render(v) }
func (v Uint32) String() string         { return Render(v) }
func (v Uint64) String() string         { return Render(v) }
func (v Float32) String() string        { return Render(v) }
func (v Float64) String() string        { return Render(v) }
func (v Char) String() string           { return Render(v) }
func (v String) String() string         { return Render(v) }
func (v Bytes) String() string          { return Render(v) }
func (v Unit) String() string           { return Render(v) }
func (v Option) String() string         { return Render(v) }
func (v UnitStruct) String() string     { return Render(v) }
func (v UnitVariant) String() string    { return Render(v) }
func (v NewtypeStruct) String() string  { return Render(v) }
func (v NewtypeVariant) String() string { return Render(v) }
func (v Seq) String() string            { return Render(v) }
func (v Tuple) String() string          { return Render(v) }
func (v TupleStruct) String() string    { return Render(v) }
func (v TupleVariant) String() string   { return Render(v) }
func (v Map) String() string            { return Render(v) }
func (v Struct) String() string         { return Render(v) }
func (v StructVariant) String() string  { return Render(v) }
func (v Error) String() string          { return Render(v) }
