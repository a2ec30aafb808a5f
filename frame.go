package imprint

// frameKind is the shape of an open frame.
type frameKind uint8

const (
	// frameSlot collects the value produced by one child: the root, an option
	// or newtype payload, an element, a map key or value, or a field value.
	frameSlot frameKind = iota
	frameSeq
	frameTuple
	frameTupleStruct
	frameTupleVariant
	frameMap
	frameStruct
	frameStructVariant
)

var frameNames = [...]string{
	frameSlot:          "value",
	frameSeq:           "sequence",
	frameTuple:         "tuple",
	frameTupleStruct:   "tuple struct",
	frameTupleVariant:  "tuple variant",
	frameMap:           "map",
	frameStruct:        "struct",
	frameStructVariant: "struct variant",
}

func (k frameKind) String() string { return frameNames[k] }

// slotRole records what a slot frame is collecting, for paths and for deciding
// what an empty slot means when checking is disabled.
type slotRole uint8

const (
	roleRoot slotRole = iota
	roleInner
	roleElement
	roleKey
	roleValue
	roleField
)

// frame is one record of the frame stack.
type frame struct {
	kind frameKind

	// slot frames
	role  slotRole
	index int    // element or entry position within the parent
	field string // field name within the parent

	// container frames
	name          string
	variant       Variant
	hint          int
	keys          []Value // map keys
	awaitingValue bool    // map received a key and waits for its value
	fields        []Field

	// slot values, or the elements of sequence-like containers, or map values
	values []Value
}

// count is the number of children accumulated by a container so far.
func (f *frame) count() int {
	switch f.kind {
	case frameMap:
		return min(len(f.keys), len(f.values))
	case frameStruct, frameStructVariant:
		return len(f.fields)
	default:
		return len(f.values)
	}
}

// materialize turns a closed container into its Value.
func (f *frame) materialize() Value {
	switch f.kind {
	case frameSeq:
		return Seq{Elems: f.values}
	case frameTuple:
		return Tuple{Elems: f.values}
	case frameTupleStruct:
		return TupleStruct{Name: f.name, Elems: f.values}
	case frameTupleVariant:
		return TupleVariant{Variant: f.variant, Elems: f.values}
	case frameMap:
		return Map{Entries: pairEntries(f.keys, f.values)}
	case frameStruct:
		return Struct{Name: f.name, Fields: f.fields}
	case frameStructVariant:
		return StructVariant{Variant: f.variant, Fields: f.fields}
	}
	return nil
}

// pairEntries zips keys and values in order. Orphans left over by an
// unchecked driving value are paired with Unit.
func pairEntries(keys, values []Value) []Entry {
	n := max(len(keys), len(values))
	if n == 0 {
		return nil
	}
	entries := make([]Entry, n)
	for i := range entries {
		var k, v Value = Unit{}, Unit{}
		if i < len(keys) {
			k = keys[i]
		}
		if i < len(values) {
			v = values[i]
		}
		entries[i] = Entry{Key: k, Value: v}
	}
	return entries
}

// frameStack is the stack of open frames of one capture, indexed by nesting
// depth. It is owned by a single capture and never shared.
type frameStack struct {
	frames []frame
}

func (s *frameStack) len() int { return len(s.frames) }

// top returns the innermost frame. The pointer is only valid until the next
// push, since pushing may reallocate the stack.
func (s *frameStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *frameStack) pushSlot(role slotRole, index int, field string) {
	s.frames = append(s.frames, frame{kind: frameSlot, role: role, index: index, field: field})
}

func (s *frameStack) push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() frame {
	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = frame{}
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

// truncate discards every frame at or above depth.
func (s *frameStack) truncate(depth int) {
	clear(s.frames[depth:])
	s.frames = s.frames[:depth]
}

// path returns the location of the innermost frame.
func (s *frameStack) path() Path {
	return s.pathAt(len(s.frames) - 1)
}

// pathAt returns the location of the frame at depth. Container frames share
// the path of the slot that holds them.
func (s *frameStack) pathAt(depth int) Path {
	p := Root
	for i := 0; i <= depth && i < len(s.frames); i++ {
		f := &s.frames[i]
		if f.kind != frameSlot {
			continue
		}
		switch f.role {
		case roleInner:
			p = p.Inner()
		case roleElement:
			p = p.Index(f.index)
		case roleKey:
			p = p.Key(f.index)
		case roleValue:
			p = p.Value(f.index)
		case roleField:
			p = p.Field(f.field)
		}
	}
	return p
}
