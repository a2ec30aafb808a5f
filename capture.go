package imprint

import (
	"errors"
	"time"
)

// Capture records the shape v describes into a tree.
//
// In ShortCircuit mode (the default) the first value error aborts the capture
// and is returned unchanged. In Persist mode value errors become Error leaves
// and the error result is reserved for protocol and usage violations.
func Capture(v Serializable, opts ...CaptureOption) (Value, error) {
	cfg := newConfig(opts)
	if cfg.mode == Persist {
		return run(newCapture[persist](cfg), v)
	}
	return run(newCapture[shortCircuit](cfg), v)
}

// CaptureErrors is Capture in Persist mode. The returned tree holds an Error
// leaf wherever a value failed; the error result is non-nil only for protocol
// and usage violations.
func CaptureErrors(v Serializable, opts ...CaptureOption) (Value, error) {
	return Capture(v, append(opts, WithErrorMode(Persist))...)
}

// Recorder is a capture driven directly by its host instead of by a single
// Serializable. The host issues exactly one value through the Serializer
// methods and then calls Finish. Any call after Finish is a usage violation.
type Recorder struct {
	recording
}

// recording is implemented by every instantiation of capture.
type recording interface {
	Serializer
	finish() (Value, error)
}

// NewRecorder returns a Recorder configured by opts.
func NewRecorder(opts ...CaptureOption) *Recorder {
	cfg := newConfig(opts)
	var r recording
	if cfg.mode == Persist {
		r = startRecording(newCapture[persist](cfg))
	} else {
		r = startRecording(newCapture[shortCircuit](cfg))
	}
	return &Recorder{recording: r}
}

// Finish closes the recorder and returns the captured tree.
func (r *Recorder) Finish() (Value, error) {
	return r.finish()
}

// capture implements Serializer by building a tree on a frame stack. One
// capture serves exactly one top-level invocation.
type capture[P policy] struct {
	cfg    config
	check  checker
	stack  frameStack
	policy P

	start     time.Time
	nodes     int
	persisted int

	// err is the first fatal error: a protocol violation, or a value error
	// that was not recovered. Once set, every call returns it.
	err      error
	finished bool
}

func newCapture[P policy](cfg config) *capture[P] {
	return &capture[P]{
		cfg:   cfg,
		check: newChecker(cfg),
	}
}

// run drives v through c as the root value.
func run[P policy](c *capture[P], v Serializable) (Value, error) {
	c.begin()
	var root Value
	vals, err := c.child(roleRoot, 0, "", v)
	if err == nil {
		root, err = c.root(vals)
	}
	c.end(err)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func startRecording[P policy](c *capture[P]) *capture[P] {
	c.begin()
	c.stack.pushSlot(roleRoot, 0, "")
	return c
}

func (c *capture[P]) finish() (Value, error) {
	if c.finished {
		return nil, newUsageError(ErrFinalized, "Finish")
	}
	err := c.err
	var root Value
	if err == nil && c.stack.len() != 1 {
		if err = c.guard(c.check.unclosed(c.stack.path(), c.stack.top())); err == nil {
			c.closeOpen(1)
		}
	}
	if err == nil {
		slot := c.stack.pop()
		if err = c.check.missing(Root, &slot); err == nil {
			root, err = c.root(slot.values)
		}
	}
	c.end(err)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (c *capture[P]) begin() {
	c.start = time.Now()
	emitCaptureStart(c.cfg.ctx, c.cfg.mode, c.cfg.checking)
}

func (c *capture[P]) end(err error) {
	c.finished = true
	c.stack.truncate(0)
	emitCaptureComplete(c.cfg.ctx, c.cfg.mode, time.Since(c.start), c.nodes, c.persisted, err)
}

// root resolves the values collected by the root slot. A capture that
// produced nothing has no tree, checked or not.
func (c *capture[P]) root(vals []Value) (Value, error) {
	if len(vals) == 0 {
		return nil, c.fail(newProtocolError(ErrMissingValue, Root, "root produced no value"))
	}
	return vals[0], nil
}

// gate rejects calls on a finished capture and replays a recorded failure.
func (c *capture[P]) gate(call string) error {
	if c.finished {
		return newUsageError(ErrFinalized, call)
	}
	return c.err
}

// fail records err as the capture's fatal error if none is set yet and
// returns the fatal error.
func (c *capture[P]) fail(err error) error {
	if c.err != nil {
		return c.err
	}
	c.err = err
	var pe *ProtocolError
	if errors.As(err, &pe) {
		emitProtocolViolation(c.cfg.ctx, pe.Path, err)
	}
	return err
}

// violation records a protocol violation located at the innermost frame.
func (c *capture[P]) violation(sentinel error, format string, args ...any) error {
	return c.fail(newProtocolError(sentinel, c.stack.path(), format, args...))
}

// guard reports a non-nil checker result as the capture's fatal error.
func (c *capture[P]) guard(err error) error {
	if err != nil {
		return c.fail(err)
	}
	return nil
}

// child runs v inside a fresh slot and returns the values it produced.
//
// This is the boundary where the error policy applies: a failing child is
// cut back to the slot it started in, so frames it left open and any partial
// value it pushed are discarded before the policy decides whether an Error
// leaf takes its place.
func (c *capture[P]) child(role slotRole, index int, field string, v Serializable) ([]Value, error) {
	depth := c.stack.len()
	c.stack.pushSlot(role, index, field)

	if v == nil {
		err := c.violation(ErrNilSerializable, "nil %s", roleName(role))
		c.stack.truncate(depth)
		return nil, err
	}

	if err := v.Serialize(c); err != nil {
		path := c.stack.pathAt(depth)
		c.stack.truncate(depth)
		if leaf, ok := c.policy.recover(err); ok && c.err == nil {
			c.persisted++
			c.nodes++
			emitErrorPersisted(c.cfg.ctx, path, err)
			return []Value{leaf}, nil
		}
		return nil, c.fail(err)
	}
	if c.err != nil {
		// The child swallowed a violation; it still ends the capture.
		c.stack.truncate(depth)
		return nil, c.err
	}
	if c.stack.len() != depth+1 {
		if err := c.guard(c.check.unclosed(c.stack.path(), c.stack.top())); err != nil {
			c.stack.truncate(depth)
			return nil, err
		}
		c.closeOpen(depth + 1)
	}
	if err := c.guard(c.check.missing(c.stack.path(), c.stack.top())); err != nil {
		c.stack.truncate(depth)
		return nil, err
	}
	return c.stack.pop().values, nil
}

// closeOpen materializes the containers above depth, innermost first, into
// the slots that hold them. Only an unchecked capture leaves frames open.
func (c *capture[P]) closeOpen(depth int) {
	for c.stack.len() > depth {
		f := c.stack.pop()
		if f.kind == frameSlot {
			continue
		}
		if top := c.stack.top(); top != nil && top.kind == frameSlot {
			top.values = append(top.values, f.materialize())
			c.nodes++
		}
	}
}

// single resolves the values of a one-value slot. With checking enabled the
// slot is known to hold exactly one; otherwise a missing value yields nil and
// extra values are dropped.
func single(vals []Value) Value {
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

// slot returns the innermost frame if it can accept a value for call.
func (c *capture[P]) slot(call string) (*frame, error) {
	if err := c.gate(call); err != nil {
		return nil, err
	}
	top := c.stack.top()
	if top == nil {
		return nil, c.violation(ErrUnexpectedCall, "%s with no capture in progress", call)
	}
	if top.kind != frameSlot {
		return nil, c.violation(ErrUnexpectedCall, "%s inside a %s; values must be added through a child call", call, top.kind)
	}
	if err := c.guard(c.check.extra(c.stack.path(), top)); err != nil {
		return nil, err
	}
	return top, nil
}

// pushChild materializes v into the innermost slot.
func (c *capture[P]) pushChild(call string, v Value) error {
	slot, err := c.slot(call)
	if err != nil {
		return err
	}
	slot.values = append(slot.values, v)
	c.nodes++
	return nil
}

// container returns the innermost frame if it is one of kinds.
func (c *capture[P]) container(call string, kinds ...frameKind) (*frame, error) {
	if err := c.gate(call); err != nil {
		return nil, err
	}
	top := c.stack.top()
	if top != nil {
		for _, k := range kinds {
			if top.kind == k {
				return top, nil
			}
		}
	}
	if top == nil || top.kind == frameSlot {
		return nil, c.violation(ErrUnexpectedCall, "%s with no open container", call)
	}
	return nil, c.violation(ErrUnexpectedCall, "%s inside a %s", call, top.kind)
}

// maxPrealloc bounds the capacity reserved from a length hint. Larger
// containers grow as their children arrive.
const maxPrealloc = 1024

// open pushes a container frame after validating its hint.
func (c *capture[P]) open(call string, f frame, allowUnknown bool) error {
	if _, err := c.slot(call); err != nil {
		return err
	}
	if err := c.guard(c.check.hint(c.stack.path(), f.hint, allowUnknown, c.cfg.maxHint)); err != nil {
		return err
	}
	if f.kind == frameTupleVariant || f.kind == frameStructVariant {
		if err := c.guard(c.check.variant(c.stack.path(), f.variant)); err != nil {
			return err
		}
	}
	if n := min(f.hint, maxPrealloc); n > 0 {
		switch f.kind {
		case frameStruct, frameStructVariant:
			f.fields = make([]Field, 0, n)
		default:
			f.values = make([]Value, 0, n)
		}
	}
	c.stack.push(f)
	return nil
}

func (c *capture[P]) HumanReadable() bool { return c.cfg.humanReadable }

func (c *capture[P]) Bool(v bool) error       { return c.pushChild("Bool", Bool(v)) }
func (c *capture[P]) Int8(v int8) error       { return c.pushChild("Int8", Int8(v)) }
func (c *capture[P]) Int16(v int16) error     { return c.pushChild("Int16", Int16(v)) }
func (c *capture[P]) Int32(v int32) error     { return c.pushChild("Int32", Int32(v)) }
func (c *capture[P]) Int64(v int64) error     { return c.pushChild("Int64", Int64(v)) }
func (c *capture[P]) Uint8(v uint8) error     { return c.pushChild("Uint8", Uint8(v)) }
func (c *capture[P]) Uint16(v uint16) error   { return c.pushChild("Uint16", Uint16(v)) }
func (c *capture[P]) Uint32(v uint32) error   { return c.pushChild("Uint32", Uint32(v)) }
func (c *capture[P]) Uint64(v uint64) error   { return c.pushChild("Uint64", Uint64(v)) }
func (c *capture[P]) Float32(v float32) error { return c.pushChild("Float32", Float32(v)) }
func (c *capture[P]) Float64(v float64) error { return c.pushChild("Float64", Float64(v)) }
func (c *capture[P]) Char(v rune) error       { return c.pushChild("Char", Char(v)) }
func (c *capture[P]) String(v string) error   { return c.pushChild("String", String(v)) }
func (c *capture[P]) Unit() error             { return c.pushChild("Unit", Unit{}) }
func (c *capture[P]) None() error             { return c.pushChild("None", Option{}) }

// Bytes copies v; the caller may reuse its buffer once the call returns.
func (c *capture[P]) Bytes(v []byte) error {
	return c.pushChild("Bytes", Bytes(append([]byte(nil), v...)))
}

func (c *capture[P]) UnitStruct(name string) error {
	return c.pushChild("UnitStruct", UnitStruct{Name: name})
}

func (c *capture[P]) UnitVariant(name string, index uint32, variant string) error {
	vr := Variant{Type: name, Index: index, Name: variant}
	if _, err := c.slot("UnitVariant"); err != nil {
		return err
	}
	if err := c.guard(c.check.variant(c.stack.path(), vr)); err != nil {
		return err
	}
	return c.pushChild("UnitVariant", UnitVariant{Variant: vr})
}

func (c *capture[P]) Some(v Serializable) error {
	inner, err := c.payload("Some", v)
	if err != nil {
		return err
	}
	return c.pushChild("Some", Option{Some: inner})
}

func (c *capture[P]) NewtypeStruct(name string, v Serializable) error {
	inner, err := c.payload("NewtypeStruct", v)
	if err != nil {
		return err
	}
	return c.pushChild("NewtypeStruct", NewtypeStruct{Name: name, Inner: inner})
}

func (c *capture[P]) NewtypeVariant(name string, index uint32, variant string, v Serializable) error {
	vr := Variant{Type: name, Index: index, Name: variant}
	if _, err := c.slot("NewtypeVariant"); err != nil {
		return err
	}
	if err := c.guard(c.check.variant(c.stack.path(), vr)); err != nil {
		return err
	}
	inner, err := c.payload("NewtypeVariant", v)
	if err != nil {
		return err
	}
	return c.pushChild("NewtypeVariant", NewtypeVariant{Variant: vr, Inner: inner})
}

// payload captures the single child of an option or newtype. An unchecked
// child that produced nothing is recorded as Unit.
func (c *capture[P]) payload(call string, v Serializable) (Value, error) {
	if _, err := c.slot(call); err != nil {
		return nil, err
	}
	vals, err := c.child(roleInner, 0, "", v)
	if err != nil {
		return nil, err
	}
	return orUnit(single(vals)), nil
}

// orUnit stands in Unit for a value an unchecked child never produced.
func orUnit(v Value) Value {
	if v == nil {
		return Unit{}
	}
	return v
}

func (c *capture[P]) BeginSeq(hint int) error {
	return c.open("BeginSeq", frame{kind: frameSeq, hint: hint}, true)
}

func (c *capture[P]) BeginTuple(n int) error {
	return c.open("BeginTuple", frame{kind: frameTuple, hint: n}, false)
}

func (c *capture[P]) BeginTupleStruct(name string, n int) error {
	return c.open("BeginTupleStruct", frame{kind: frameTupleStruct, name: name, hint: n}, false)
}

func (c *capture[P]) BeginTupleVariant(name string, index uint32, variant string, n int) error {
	return c.open("BeginTupleVariant", frame{
		kind:    frameTupleVariant,
		variant: Variant{Type: name, Index: index, Name: variant},
		hint:    n,
	}, false)
}

func (c *capture[P]) BeginMap(hint int) error {
	return c.open("BeginMap", frame{kind: frameMap, hint: hint}, true)
}

func (c *capture[P]) BeginStruct(name string, n int) error {
	return c.open("BeginStruct", frame{kind: frameStruct, name: name, hint: n}, false)
}

func (c *capture[P]) BeginStructVariant(name string, index uint32, variant string, n int) error {
	return c.open("BeginStructVariant", frame{
		kind:    frameStructVariant,
		variant: Variant{Type: name, Index: index, Name: variant},
		hint:    n,
	}, false)
}

func (c *capture[P]) Element(v Serializable) error {
	f, err := c.container("Element", frameSeq, frameTuple, frameTupleStruct, frameTupleVariant)
	if err != nil {
		return err
	}
	vals, err := c.child(roleElement, len(f.values), "", v)
	if err != nil {
		return err
	}
	// The stack may have grown while the child ran; fetch the frame again.
	f = c.stack.top()
	f.values = append(f.values, vals...)
	return nil
}

func (c *capture[P]) MapKey(k Serializable) error {
	f, err := c.container("MapKey", frameMap)
	if err != nil {
		return err
	}
	if err := c.guard(c.check.key(c.stack.path(), f)); err != nil {
		return err
	}
	vals, err := c.child(roleKey, len(f.keys), "", k)
	if err != nil {
		return err
	}
	f = c.stack.top()
	f.keys = append(f.keys, orUnit(single(vals)))
	f.awaitingValue = true
	return nil
}

func (c *capture[P]) MapValue(v Serializable) error {
	f, err := c.container("MapValue", frameMap)
	if err != nil {
		return err
	}
	if err := c.guard(c.check.value(c.stack.path(), f)); err != nil {
		return err
	}
	vals, err := c.child(roleValue, len(f.values), "", v)
	if err != nil {
		return err
	}
	f = c.stack.top()
	f.values = append(f.values, orUnit(single(vals)))
	f.awaitingValue = false
	return nil
}

func (c *capture[P]) Entry(k, v Serializable) error {
	if err := c.MapKey(k); err != nil {
		return err
	}
	return c.MapValue(v)
}

func (c *capture[P]) Field(name string, v Serializable) error {
	if _, err := c.container("Field", frameStruct, frameStructVariant); err != nil {
		return err
	}
	vals, err := c.child(roleField, 0, name, v)
	if err != nil {
		return err
	}
	f := c.stack.top()
	f.fields = append(f.fields, Field{Name: name, Value: single(vals)})
	return nil
}

func (c *capture[P]) SkipField(name string) error {
	f, err := c.container("SkipField", frameStruct, frameStructVariant)
	if err != nil {
		return err
	}
	f.fields = append(f.fields, Field{Name: name})
	return nil
}

func (c *capture[P]) End() error {
	if err := c.gate("End"); err != nil {
		return err
	}
	top := c.stack.top()
	if top == nil || top.kind == frameSlot {
		return c.guard(c.check.stray(c.stack.path()))
	}
	if err := c.guard(c.check.close(c.stack.path(), top)); err != nil {
		return err
	}
	f := c.stack.pop()
	return c.pushChild("End", f.materialize())
}
