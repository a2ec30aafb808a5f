package cbor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/imprint"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/cbor" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/cbor")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	c := New()
	a := imprint.Struct{Name: "P", Fields: []imprint.Field{
		{Name: "x", Value: imprint.Int64(1)},
		{Name: "y", Value: imprint.Int64(2)},
	}}
	b := imprint.Struct{Name: "P", Fields: []imprint.Field{
		{Name: "y", Value: imprint.Int64(2)},
		{Name: "x", Value: imprint.Int64(1)},
	}}

	da, err := c.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal(a) error: %v", err)
	}
	db, err := c.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal(b) error: %v", err)
	}
	if !bytes.Equal(da, db) {
		t.Errorf("Marshal() not deterministic: %x != %x", da, db)
	}

	var restored map[string]int
	if err := cbor.Unmarshal(da, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored["x"] != 1 || restored["y"] != 2 {
		t.Errorf("restored = %v", restored)
	}
}

func TestMarshalScalars(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		in   imprint.Value
		want []byte
	}{
		{"true", imprint.Bool(true), []byte{0xf5}},
		{"null", imprint.None(), []byte{0xf6}},
		{"small uint", imprint.Uint16(10), []byte{0x0a}},
		{"text", imprint.String("a"), []byte{0x61, 'a'}},
		{"bytes", imprint.Bytes{0x01}, []byte{0x41, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Marshal() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestMarshalErrorLeaf(t *testing.T) {
	c := New()
	_, err := c.Marshal(imprint.Error{Message: "boom"})
	var leaf *imprint.LeafError
	if !errors.As(err, &leaf) {
		t.Fatalf("Marshal() error = %v, want *LeafError", err)
	}
	if leaf.Path != imprint.Root {
		t.Errorf("leaf.Path = %q, want %q", leaf.Path, imprint.Root)
	}
}
