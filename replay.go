package imprint

import (
	"fmt"
)

// Replay returns a Serializable that drives a Serializer with exactly the
// calls that reproduce v. Length hints equal the actual counts and skipped
// fields replay as SkipField.
//
// An Error leaf replays as a value error wrapping ErrErrorLeaf, so capturing a
// replayed tree in Persist mode yields the same Error leaf again.
func Replay(v Value) Serializable {
	return replay{v}
}

type replay struct{ v Value }

// replayError is the value error raised for an Error leaf. Its message is the
// leaf's message unchanged.
type replayError struct{ msg string }

func (e *replayError) Error() string { return e.msg }
func (e *replayError) Unwrap() error { return ErrErrorLeaf }

func (r replay) Serialize(s Serializer) error {
	switch v := r.v.(type) {
	case nil:
		return fmt.Errorf("%w: nil value", ErrErrorLeaf)
	case Bool:
		return s.Bool(bool(v))
	case Int8:
		return s.Int8(int8(v))
	case Int16:
		return s.Int16(int16(v))
	case Int32:
		return s.Int32(int32(v))
	case Int64:
		return s.Int64(int64(v))
	case Uint8:
		return s.Uint8(uint8(v))
	case Uint16:
		return s.Uint16(uint16(v))
	case Uint32:
		return s.Uint32(uint32(v))
	case Uint64:
		return s.Uint64(uint64(v))
	case Float32:
		return s.Float32(float32(v))
	case Float64:
		return s.Float64(float64(v))
	case Char:
		return s.Char(rune(v))
	case String:
		return s.String(string(v))
	case Bytes:
		return s.Bytes([]byte(v))
	case Unit:
		return s.Unit()
	case Option:
		if v.IsNone() {
			return s.None()
		}
		return s.Some(replay{v.Some})
	case UnitStruct:
		return s.UnitStruct(v.Name)
	case UnitVariant:
		return s.UnitVariant(v.Type, v.Index, v.Name)
	case NewtypeStruct:
		return s.NewtypeStruct(v.Name, replay{v.Inner})
	case NewtypeVariant:
		return s.NewtypeVariant(v.Type, v.Index, v.Name, replay{v.Inner})
	case Seq:
		if err := s.BeginSeq(len(v.Elems)); err != nil {
			return err
		}
		return replayElems(s, v.Elems)
	case Tuple:
		if err := s.BeginTuple(len(v.Elems)); err != nil {
			return err
		}
		return replayElems(s, v.Elems)
	case TupleStruct:
		if err := s.BeginTupleStruct(v.Name, len(v.Elems)); err != nil {
			return err
		}
		return replayElems(s, v.Elems)
	case TupleVariant:
		if err := s.BeginTupleVariant(v.Type, v.Index, v.Name, len(v.Elems)); err != nil {
			return err
		}
		return replayElems(s, v.Elems)
	case Map:
		if err := s.BeginMap(len(v.Entries)); err != nil {
			return err
		}
		for _, e := range v.Entries {
			if err := s.Entry(replay{e.Key}, replay{e.Value}); err != nil {
				return err
			}
		}
		return s.End()
	case Struct:
		if err := s.BeginStruct(v.Name, len(v.Fields)); err != nil {
			return err
		}
		return replayFields(s, v.Fields)
	case StructVariant:
		if err := s.BeginStructVariant(v.Type, v.Index, v.Name, len(v.Fields)); err != nil {
			return err
		}
		return replayFields(s, v.Fields)
	case Error:
		return &replayError{msg: v.Message}
	}
	return fmt.Errorf("cannot replay %T", r.v)
}

func replayElems(s Serializer, elems []Value) error {
	for _, e := range elems {
		if err := s.Element(replay{e}); err != nil {
			return err
		}
	}
	return s.End()
}

func replayFields(s Serializer, fields []Field) error {
	for _, f := range fields {
		var err error
		if f.Skipped() {
			err = s.SkipField(f.Name)
		} else {
			err = s.Field(f.Name, replay{f.Value})
		}
		if err != nil {
			return err
		}
	}
	return s.End()
}
