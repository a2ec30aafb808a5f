// Package drive describes ordinary Go values to an imprint.Serializer using
// reflection, so hosts can capture values without writing Serialize methods.
//
// Mapping:
//
//	imprint.Serializable           delegates to its Serialize method
//	encoding.TextMarshaler         String, or the marshal error as a value error
//	bool, intN, uintN, floatN      matching scalar (int as Int64, uint and uintptr as Uint64)
//	string                         String
//	[]byte, [N]byte                Bytes
//	slice                          Seq
//	array                          Tuple
//	map                            Map with keys in sorted order
//	pointer                        None when nil, Some otherwise
//	interface                      Unit when nil, the dynamic value otherwise
//	struct                         Struct named after the Go type
//	struct without exported fields UnitStruct
//
// Struct fields are named by the `imprint:"name"` tag, falling back to the Go
// field name. `imprint:"-"` records the field as skipped. Channels, functions,
// complex numbers and unsafe pointers fail with ErrUnsupported, and cycles
// through pointers, maps or slices fail with ErrCycle. Both are value errors:
// in Persist mode they become Error leaves in place of the offending value.
package drive

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"github.com/zoobzio/imprint"
)

// Sentinel errors for values that cannot be described.
var (
	ErrUnsupported = errors.New("unsupported type")
	ErrCycle       = errors.New("reference cycle")
)

// Of returns a Serializable describing v.
func Of(v any) imprint.Serializable {
	return value{rv: reflect.ValueOf(v), st: &state{}}
}

// For is Of for a statically known type. When T is a struct its field plan is
// built from sentinel metadata up front instead of on first capture.
func For[T any](v T) imprint.Serializable {
	primePlan[T]()
	return value{rv: reflect.ValueOf(&v).Elem(), st: &state{}}
}

// state is shared by every value of one description.
type state struct {
	// visiting holds the pointers, maps and slices on the path from the root
	// to the value being described.
	visiting map[visit]struct{}
}

// visit identifies a reference value. Slices also carry their length, since
// distinct slices may share a data pointer.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

func visitOf(rv reflect.Value) visit {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}
	return key
}

func (st *state) enter(rv reflect.Value) error {
	key := visitOf(rv)
	if _, ok := st.visiting[key]; ok {
		return fmt.Errorf("%w through %s", ErrCycle, rv.Type())
	}
	if st.visiting == nil {
		st.visiting = make(map[visit]struct{})
	}
	st.visiting[key] = struct{}{}
	return nil
}

func (st *state) leave(rv reflect.Value) {
	delete(st.visiting, visitOf(rv))
}

type value struct {
	rv reflect.Value
	st *state
}

func (d value) with(rv reflect.Value) value {
	return value{rv: rv, st: d.st}
}

var (
	serializableType  = reflect.TypeFor[imprint.Serializable]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Serialize describes the wrapped value to s.
func (d value) Serialize(s imprint.Serializer) error {
	rv := d.rv
	if !rv.IsValid() {
		return s.Unit()
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return s.Unit()
		}
		return d.with(rv.Elem()).Serialize(s)
	case reflect.Pointer:
		if rv.IsNil() {
			return s.None()
		}
		if err := d.st.enter(rv); err != nil {
			return err
		}
		defer d.st.leave(rv)
		return s.Some(d.with(rv.Elem()))
	}

	if m, ok := implements(rv, serializableType); ok {
		return m.Interface().(imprint.Serializable).Serialize(s)
	}
	if m, ok := implements(rv, textMarshalerType); ok {
		text, err := m.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		return s.String(string(text))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return s.Bool(rv.Bool())
	case reflect.Int8:
		return s.Int8(int8(rv.Int()))
	case reflect.Int16:
		return s.Int16(int16(rv.Int()))
	case reflect.Int32:
		return s.Int32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return s.Int64(rv.Int())
	case reflect.Uint8:
		return s.Uint8(uint8(rv.Uint()))
	case reflect.Uint16:
		return s.Uint16(uint16(rv.Uint()))
	case reflect.Uint32:
		return s.Uint32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return s.Uint64(rv.Uint())
	case reflect.Float32:
		return s.Float32(float32(rv.Float()))
	case reflect.Float64:
		return s.Float64(rv.Float())
	case reflect.String:
		return s.String(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return s.Bytes(rv.Bytes())
		}
		if rv.Len() > 0 {
			if err := d.st.enter(rv); err != nil {
				return err
			}
			defer d.st.leave(rv)
		}
		if err := s.BeginSeq(rv.Len()); err != nil {
			return err
		}
		return d.elements(s, rv)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return s.Bytes(arrayBytes(rv))
		}
		if err := s.BeginTuple(rv.Len()); err != nil {
			return err
		}
		return d.elements(s, rv)
	case reflect.Map:
		return d.describeMap(s, rv)
	case reflect.Struct:
		return d.describeStruct(s, rv)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
}

// implements reports whether rv, or its address when rv is addressable,
// implements iface.
func implements(rv reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	if rv.Type().Implements(iface) && rv.CanInterface() {
		return rv, true
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(iface) && rv.Addr().CanInterface() {
		return rv.Addr(), true
	}
	return reflect.Value{}, false
}

func arrayBytes(rv reflect.Value) []byte {
	b := make([]byte, rv.Len())
	for i := range b {
		b[i] = byte(rv.Index(i).Uint())
	}
	return b
}

func (d value) elements(s imprint.Serializer, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if err := s.Element(d.with(rv.Index(i))); err != nil {
			return err
		}
	}
	return s.End()
}

func (d value) describeMap(s imprint.Serializer, rv reflect.Value) error {
	if !rv.IsNil() {
		if err := d.st.enter(rv); err != nil {
			return err
		}
		defer d.st.leave(rv)
	}
	if err := s.BeginMap(rv.Len()); err != nil {
		return err
	}
	for _, k := range sortedKeys(rv) {
		if err := s.Entry(d.with(k), d.with(rv.MapIndex(k))); err != nil {
			return err
		}
	}
	return s.End()
}

func (d value) describeStruct(s imprint.Serializer, rv reflect.Value) error {
	plan := planOf(rv.Type())
	if len(plan.fields) == 0 {
		return s.UnitStruct(plan.name)
	}
	if err := s.BeginStruct(plan.name, len(plan.fields)); err != nil {
		return err
	}
	for _, f := range plan.fields {
		var err error
		if f.skip {
			err = s.SkipField(f.name)
		} else {
			err = s.Field(f.name, d.with(rv.FieldByIndex(f.index)))
		}
		if err != nil {
			return err
		}
	}
	return s.End()
}
