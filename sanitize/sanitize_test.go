package sanitize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/imprint"
)

func user() imprint.Struct {
	return imprint.Struct{Name: "User", Fields: []imprint.Field{
		{Name: "id", Value: imprint.String("u-1")},
		{Name: "email", Value: imprint.String("alice@example.com")},
		{Name: "ssn", Value: imprint.Some(imprint.String("123-45-6789"))},
		{Name: "password", Value: imprint.String("hunter2")},
		{Name: "notes", Value: imprint.Seq{Elems: []imprint.Value{imprint.String("a"), imprint.String("b")}}},
		{Name: "token"},
	}}
}

func TestApply(t *testing.T) {
	s, err := New(
		WithMask("email", MaskEmail),
		WithMask("ssn", MaskSSN),
		WithHash("password", HashSHA256),
		WithRedact("notes", "[REDACTED]"),
		WithRedact("token", "***"),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := user()
	got, err := s.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	want := imprint.Struct{Name: "User", Fields: []imprint.Field{
		{Name: "id", Value: imprint.String("u-1")},
		{Name: "email", Value: imprint.String("a***@example.com")},
		{Name: "ssn", Value: imprint.Some(imprint.String("***-**-6789"))},
		{Name: "password", Value: imprint.String("f52fbd32b2b3b86ff88ef6c490628285f482af15ddcb29541f94bcf526a3f6c7")},
		{Name: "notes", Value: imprint.Seq{Elems: []imprint.Value{imprint.String("[REDACTED]"), imprint.String("[REDACTED]")}}},
		{Name: "token"},
	}}
	if !imprint.Equal(got, want) {
		t.Errorf("Apply() =\n%s\nwant\n%s", got, want)
	}

	if !imprint.Equal(in, user()) {
		t.Errorf("Apply() modified its input: %s", in)
	}
}

func TestApplyMapEntries(t *testing.T) {
	s, err := New(WithRedact("secret", "x"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := imprint.Map{Entries: []imprint.Entry{
		{Key: imprint.String("secret"), Value: imprint.Bytes("raw")},
		{Key: imprint.Int32(1), Value: imprint.String("secret")},
		{Key: imprint.String("nested"), Value: imprint.Struct{Name: "N", Fields: []imprint.Field{
			{Name: "secret", Value: imprint.Char('q')},
		}}},
	}}

	got, err := s.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	want := imprint.Map{Entries: []imprint.Entry{
		{Key: imprint.String("secret"), Value: imprint.Bytes("x")},
		{Key: imprint.Int32(1), Value: imprint.String("secret")},
		{Key: imprint.String("nested"), Value: imprint.Struct{Name: "N", Fields: []imprint.Field{
			{Name: "secret", Value: imprint.String("x")},
		}}},
	}}
	if !imprint.Equal(got, want) {
		t.Errorf("Apply() =\n%s\nwant\n%s", got, want)
	}
}

func TestApplyLeavesOtherKinds(t *testing.T) {
	s, err := New(WithMask("age", MaskName))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := imprint.StructVariant{
		Variant: imprint.Variant{Type: "Event", Index: 0, Name: "Joined"},
		Fields: []imprint.Field{
			{Name: "age", Value: imprint.Uint8(30)},
			{Name: "err", Value: imprint.Error{Message: "boom"}},
		},
	}
	got, err := s.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if !imprint.Equal(got, in) {
		t.Errorf("Apply() = %s, want %s", got, in)
	}
}

func TestCustomHandlers(t *testing.T) {
	s, err := New(
		WithMasker("initials", MaskFunc(func(v string) string { return strings.ToUpper(v[:1]) + "." })),
		WithMask("name", "initials"),
		WithHasher("fixed", fixedHasher("h")),
		WithHash("pin", "fixed"),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := imprint.Struct{Name: "P", Fields: []imprint.Field{
		{Name: "name", Value: imprint.String("grace")},
		{Name: "pin", Value: imprint.String("1234")},
	}}
	got, err := s.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	want := imprint.Struct{Name: "P", Fields: []imprint.Field{
		{Name: "name", Value: imprint.String("G.")},
		{Name: "pin", Value: imprint.String("h")},
	}}
	if !imprint.Equal(got, want) {
		t.Errorf("Apply() = %s, want %s", got, want)
	}
}

func TestHashFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	s, err := New(WithHasher(HashArgon2, failingHasher{boom}), WithHash("pw", HashArgon2))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	in := imprint.Struct{Name: "P", Fields: []imprint.Field{{Name: "pw", Value: imprint.String("x")}}}
	if _, err := s.Apply(context.Background(), in); !errors.Is(err, boom) {
		t.Errorf("Apply() error = %v, want %v", err, boom)
	}
}

func TestNewInvalidRule(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"unknown mask", []Option{WithMask("f", "nope")}},
		{"unknown hash", []Option{WithHash("f", "md5")}},
		{"two rules", []Option{WithRedact("f", "x"), WithMask("f", MaskEmail)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("New() error = %v, want ErrInvalidRule", err)
			}
		})
	}
}

type fixedHasher string

func (h fixedHasher) Hash([]byte) (string, error) { return string(h), nil }

type failingHasher struct{ err error }

func (h failingHasher) Hash([]byte) (string, error) { return "", h.err }
