package bson

import (
	"errors"
	"testing"

	"github.com/zoobzio/imprint"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalDocument(t *testing.T) {
	c := New()
	tree := imprint.Struct{Name: "Order", Fields: []imprint.Field{
		{Name: "id", Value: imprint.String("o-1")},
		{Name: "qty", Value: imprint.Int32(3)},
		{Name: "items", Value: imprint.Seq{Elems: []imprint.Value{imprint.String("x")}}},
		{Name: "status", Value: imprint.UnitVariant{Variant: imprint.Variant{Type: "Status", Name: "Open"}}},
	}}

	data, err := c.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored bson.D
	if err := bson.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	keys := make([]string, len(restored))
	for i, e := range restored {
		keys[i] = e.Key
	}
	want := []string{"id", "qty", "items", "status"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if restored[3].Value != "Open" {
		t.Errorf("status = %v, want %q", restored[3].Value, "Open")
	}
}

func TestMarshalNotDocument(t *testing.T) {
	c := New()
	_, err := c.Marshal(imprint.Int64(1))
	if !errors.Is(err, ErrNotDocument) {
		t.Errorf("Marshal() error = %v, want ErrNotDocument", err)
	}
}

func TestMarshalErrorLeaf(t *testing.T) {
	c := New()
	tree := imprint.Struct{Name: "S", Fields: []imprint.Field{
		{Name: "bad", Value: imprint.Error{Message: "boom"}},
	}}
	_, err := c.Marshal(tree)
	var leaf *imprint.LeafError
	if !errors.As(err, &leaf) {
		t.Fatalf("Marshal() error = %v, want *LeafError", err)
	}
}
