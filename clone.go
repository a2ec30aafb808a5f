package imprint

// Clone returns a deep copy of v that shares no memory with it.
//
// Captured trees are never modified in place; tools that derive a new tree from
// an existing one (redaction, rewriting) clone the parts they keep so that each
// tree continues to own its children exclusively.
func Clone(v Value) Value {
	switch n := v.(type) {
	case nil:
		return nil
	case Bytes:
		if n == nil {
			return n
		}
		return append(Bytes{}, n...)
	case Option:
		return Option{Some: Clone(n.Some)}
	case NewtypeStruct:
		return NewtypeStruct{Name: n.Name, Inner: Clone(n.Inner)}
	case NewtypeVariant:
		return NewtypeVariant{Variant: n.Variant, Inner: Clone(n.Inner)}
	case Seq:
		return Seq{Elems: cloneElems(n.Elems)}
	case Tuple:
		return Tuple{Elems: cloneElems(n.Elems)}
	case TupleStruct:
		return TupleStruct{Name: n.Name, Elems: cloneElems(n.Elems)}
	case TupleVariant:
		return TupleVariant{Variant: n.Variant, Elems: cloneElems(n.Elems)}
	case Map:
		if n.Entries == nil {
			return n
		}
		entries := make([]Entry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = Entry{Key: Clone(e.Key), Value: Clone(e.Value)}
		}
		return Map{Entries: entries}
	case Struct:
		return Struct{Name: n.Name, Fields: cloneFields(n.Fields)}
	case StructVariant:
		return StructVariant{Variant: n.Variant, Fields: cloneFields(n.Fields)}
	default:
		// Remaining kinds are plain values with no shared backing memory.
		return v
	}
}

func cloneElems(elems []Value) []Value {
	if elems == nil {
		return nil
	}
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[i] = Clone(e)
	}
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Name: f.Name, Value: Clone(f.Value)}
	}
	return out
}
