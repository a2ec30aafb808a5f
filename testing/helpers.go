// Package testing provides fixtures and assertions for code that captures
// values with imprint. Import it under another name, conventionally
// imprinttest.
package testing

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/zoobzio/imprint"
)

// Value errors raised by the fixtures.
var (
	ErrBeforeEpoch = errors.New("SystemTime must be later than UNIX_EPOCH")
	ErrInvalidPath = errors.New("path contains invalid UTF-8 characters")
)

// AssertEqual fails t when got and want are not deeply equal, printing both.
func AssertEqual(t testing.TB, got, want imprint.Value) {
	t.Helper()
	if !imprint.Equal(got, want) {
		t.Errorf("tree mismatch\n got: %s\nwant: %s", imprint.Render(got), imprint.Render(want))
	}
}

// MustCapture captures v with opts and fails t on any error.
func MustCapture(t testing.TB, v imprint.Serializable, opts ...imprint.CaptureOption) imprint.Value {
	t.Helper()
	tree, err := imprint.Capture(v, opts...)
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}
	return tree
}

// SystemTime is a timestamp that cannot be described when it predates the
// Unix epoch.
type SystemTime struct {
	Secs  int64
	Nanos uint32
}

// Serialize describes t as a struct of seconds and nanoseconds since the epoch.
func (t SystemTime) Serialize(s imprint.Serializer) error {
	if t.Secs < 0 {
		return ErrBeforeEpoch
	}
	if err := s.BeginStruct("SystemTime", 2); err != nil {
		return err
	}
	if err := s.Field("secs_since_epoch", imprint.SerializeFunc(func(s imprint.Serializer) error {
		return s.Uint64(uint64(t.Secs))
	})); err != nil {
		return err
	}
	if err := s.Field("nanos_since_epoch", imprint.SerializeFunc(func(s imprint.Serializer) error {
		return s.Uint32(t.Nanos)
	})); err != nil {
		return err
	}
	return s.End()
}

// PathBuf is a file system path held as raw bytes. Only valid UTF-8 paths
// can be described.
type PathBuf []byte

// Serialize describes p as a string.
func (p PathBuf) Serialize(s imprint.Serializer) error {
	if !utf8.Valid(p) {
		return ErrInvalidPath
	}
	return s.String(string(p))
}

// MotivatingStruct has two fields that fail to serialize followed by one that
// succeeds.
type MotivatingStruct struct {
	SystemTime   SystemTime
	PathBuf      PathBuf
	NormalString string
}

// NewMotivatingStruct returns the failing fixture: a timestamp before the
// epoch and a path with an invalid byte.
func NewMotivatingStruct() MotivatingStruct {
	return MotivatingStruct{
		SystemTime:   SystemTime{Secs: -1},
		PathBuf:      PathBuf{'/', 't', 'm', 'p', '/', 0xff},
		NormalString: "this is a string",
	}
}

// Serialize describes m as the struct "MyStruct".
func (m MotivatingStruct) Serialize(s imprint.Serializer) error {
	if err := s.BeginStruct("MyStruct", 3); err != nil {
		return err
	}
	if err := s.Field("system_time", m.SystemTime); err != nil {
		return err
	}
	if err := s.Field("path_buf", m.PathBuf); err != nil {
		return err
	}
	if err := s.Field("normal_string", String(m.NormalString)); err != nil {
		return err
	}
	return s.End()
}

// PersistedMotivatingStruct is the tree persist mode captures from
// NewMotivatingStruct.
func PersistedMotivatingStruct() imprint.Value {
	return imprint.Struct{Name: "MyStruct", Fields: []imprint.Field{
		{Name: "system_time", Value: imprint.Error{Message: ErrBeforeEpoch.Error()}},
		{Name: "path_buf", Value: imprint.Error{Message: ErrInvalidPath.Error()}},
		{Name: "normal_string", Value: imprint.String("this is a string")},
	}}
}

// FailingValue fails with Err without issuing any call.
type FailingValue struct {
	Err error
}

// Serialize returns f.Err.
func (f FailingValue) Serialize(imprint.Serializer) error {
	return f.Err
}

// String describes itself as a string leaf.
type String string

// Serialize calls s.String.
func (v String) Serialize(s imprint.Serializer) error { return s.String(string(v)) }

// Int describes itself as an Int64 leaf.
type Int int64

// Serialize calls s.Int64.
func (v Int) Serialize(s imprint.Serializer) error { return s.Int64(int64(v)) }
