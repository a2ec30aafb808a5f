package imprint

import (
	"fmt"
)

// Object is an ordered string-keyed mapping produced by Plain for structs and
// string-keyed maps. Member order is the order of the captured tree.
type Object []Member

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Get returns the value of the first member named key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Plain lowers a tree to plain Go data in the externally tagged layout used by
// text formats:
//
//	None, Unit, unit struct      nil
//	Some(x), newtype struct      x
//	unit variant                 "Variant"
//	newtype variant              {"Variant": x}
//	seq, tuple, tuple struct     []any
//	tuple variant                {"Variant": []any}
//	struct                       Object
//	struct variant               {"Variant": Object}
//	map with string keys         Object
//	any other map                []any of [key, value] pairs
//
// Chars become one-rune strings and skipped fields are omitted. An Error leaf
// fails the whole conversion with a *LeafError.
func Plain(v Value) (any, error) {
	return plain(Root, v)
}

func plain(p Path, v Value) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case Bool:
		return bool(n), nil
	case Int8:
		return int8(n), nil
	case Int16:
		return int16(n), nil
	case Int32:
		return int32(n), nil
	case Int64:
		return int64(n), nil
	case Uint8:
		return uint8(n), nil
	case Uint16:
		return uint16(n), nil
	case Uint32:
		return uint32(n), nil
	case Uint64:
		return uint64(n), nil
	case Float32:
		return float32(n), nil
	case Float64:
		return float64(n), nil
	case Char:
		return string(rune(n)), nil
	case String:
		return string(n), nil
	case Bytes:
		return []byte(n), nil
	case Unit, UnitStruct:
		return nil, nil
	case Option:
		if n.IsNone() {
			return nil, nil
		}
		return plain(p.Inner(), n.Some)
	case UnitVariant:
		return n.Name, nil
	case NewtypeStruct:
		return plain(p.Inner(), n.Inner)
	case NewtypeVariant:
		inner, err := plain(p.Inner(), n.Inner)
		if err != nil {
			return nil, err
		}
		return Object{{Key: n.Name, Value: inner}}, nil
	case Seq:
		return plainElems(p, n.Elems)
	case Tuple:
		return plainElems(p, n.Elems)
	case TupleStruct:
		return plainElems(p, n.Elems)
	case TupleVariant:
		elems, err := plainElems(p, n.Elems)
		if err != nil {
			return nil, err
		}
		return Object{{Key: n.Name, Value: elems}}, nil
	case Map:
		return plainMap(p, n)
	case Struct:
		return plainFields(p, n.Fields)
	case StructVariant:
		fields, err := plainFields(p, n.Fields)
		if err != nil {
			return nil, err
		}
		return Object{{Key: n.Name, Value: fields}}, nil
	case Error:
		return nil, &LeafError{Path: p, Message: n.Message}
	}
	return nil, fmt.Errorf("unsupported value %T at %s", v, p)
}

func plainElems(p Path, elems []Value) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		v, err := plain(p.Index(i), e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func plainFields(p Path, fields []Field) (Object, error) {
	out := make(Object, 0, len(fields))
	for _, f := range fields {
		if f.Skipped() {
			continue
		}
		v, err := plain(p.Field(f.Name), f.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, Member{Key: f.Name, Value: v})
	}
	return out, nil
}

func plainMap(p Path, m Map) (any, error) {
	if stringKeyed(m) {
		out := make(Object, 0, len(m.Entries))
		for i, e := range m.Entries {
			v, err := plain(p.Value(i), e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Member{Key: string(e.Key.(String)), Value: v})
		}
		return out, nil
	}
	out := make([]any, len(m.Entries))
	for i, e := range m.Entries {
		k, err := plain(p.Key(i), e.Key)
		if err != nil {
			return nil, err
		}
		v, err := plain(p.Value(i), e.Value)
		if err != nil {
			return nil, err
		}
		out[i] = []any{k, v}
	}
	return out, nil
}

// stringKeyed reports whether every key of m is a String. The empty map
// counts as string keyed.
func stringKeyed(m Map) bool {
	for _, e := range m.Entries {
		if _, ok := e.Key.(String); !ok {
			return false
		}
	}
	return true
}
