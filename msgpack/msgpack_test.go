package msgpack

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
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
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshalStruct(t *testing.T) {
	c := New()
	tree := imprint.Struct{Name: "User", Fields: []imprint.Field{
		{Name: "name", Value: imprint.String("test")},
		{Name: "value", Value: imprint.Int64(42)},
		{Name: "secret"},
	}}

	data, err := c.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored struct {
		Name   string `msgpack:"name"`
		Value  int    `msgpack:"value"`
		Secret string `msgpack:"secret"`
	}
	if err := msgpack.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Name != "test" || restored.Value != 42 || restored.Secret != "" {
		t.Errorf("restored = %+v", restored)
	}
}

func TestMarshalKeepsOrder(t *testing.T) {
	c := New()
	tree := imprint.Map{Entries: []imprint.Entry{
		{Key: imprint.String("b"), Value: imprint.Bool(true)},
		{Key: imprint.String("a"), Value: imprint.Bool(false)},
	}}

	data, err := c.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// fixmap(2) "b" true "a" false
	want := []byte{0x82, 0xa1, 'b', 0xc3, 0xa1, 'a', 0xc2}
	if string(data) != string(want) {
		t.Errorf("Marshal() = %x, want %x", data, want)
	}
}

func TestMarshalErrorLeaf(t *testing.T) {
	c := New()
	_, err := c.Marshal(imprint.Some(imprint.Error{Message: "boom"}))
	var leaf *imprint.LeafError
	if !errors.As(err, &leaf) {
		t.Fatalf("Marshal() error = %v, want *LeafError", err)
	}
	if leaf.Path != "$.0" {
		t.Errorf("leaf.Path = %q, want %q", leaf.Path, "$.0")
	}
}
