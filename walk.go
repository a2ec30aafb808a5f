package imprint

import (
	"fmt"
	"strconv"
)

// Path locates a node inside a captured tree.
//
// The root is "$". Struct fields append ".name", sequence and tuple elements
// append "[i]", map keys append "{i}.key" and map values "{i}.value" where i is
// the entry position, option and newtype payloads append ".0".
type Path string

// Root is the path of the outermost value.
const Root Path = "$"

// Field returns the path of the named field below p.
func (p Path) Field(name string) Path { return p + "." + Path(name) }

// Index returns the path of the i-th element below p.
func (p Path) Index(i int) Path { return p + "[" + Path(strconv.Itoa(i)) + "]" }

// Key returns the path of the key of the i-th map entry below p.
func (p Path) Key(i int) Path { return p + "{" + Path(strconv.Itoa(i)) + "}.key" }

// Value returns the path of the value of the i-th map entry below p.
func (p Path) Value(i int) Path { return p + "{" + Path(strconv.Itoa(i)) + "}.value" }

// Inner returns the path of an option or newtype payload below p.
func (p Path) Inner() Path { return p + ".0" }

func (p Path) String() string { return string(p) }

// Walk visits v and its descendants in pre-order. Returning false from fn skips
// the children of the node just visited. Skipped fields are not visited.
func Walk(v Value, fn func(path Path, v Value) bool) {
	walk(Root, v, fn)
}

func walk(p Path, v Value, fn func(Path, Value) bool) {
	if v == nil || !fn(p, v) {
		return
	}
	switch n := v.(type) {
	case Option:
		walk(p.Inner(), n.Some, fn)
	case NewtypeStruct:
		walk(p.Inner(), n.Inner, fn)
	case NewtypeVariant:
		walk(p.Inner(), n.Inner, fn)
	case Seq:
		walkElems(p, n.Elems, fn)
	case Tuple:
		walkElems(p, n.Elems, fn)
	case TupleStruct:
		walkElems(p, n.Elems, fn)
	case TupleVariant:
		walkElems(p, n.Elems, fn)
	case Map:
		for i, e := range n.Entries {
			walk(p.Key(i), e.Key, fn)
			walk(p.Value(i), e.Value, fn)
		}
	case Struct:
		walkFields(p, n.Fields, fn)
	case StructVariant:
		walkFields(p, n.Fields, fn)
	}
}

func walkElems(p Path, elems []Value, fn func(Path, Value) bool) {
	for i, e := range elems {
		walk(p.Index(i), e, fn)
	}
}

func walkFields(p Path, fields []Field, fn func(Path, Value) bool) {
	for _, f := range fields {
		walk(p.Field(f.Name), f.Value, fn)
	}
}

// LeafError is an Error leaf found in a tree, together with its location.
type LeafError struct {
	Path    Path
	Message string
}

func (e *LeafError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message, e.Path)
}

// Errors returns every Error leaf of v in tree order.
func Errors(v Value) []LeafError {
	var out []LeafError
	Walk(v, func(p Path, n Value) bool {
		if e, ok := n.(Error); ok {
			out = append(out, LeafError{Path: p, Message: e.Message})
		}
		return true
	})
	return out
}
