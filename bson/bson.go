// Package bson provides a BSON codec for captured trees.
package bson

import (
	"errors"
	"fmt"

	"github.com/zoobzio/imprint"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotDocument is returned when the root of a tree does not lower to a
// document. BSON has no top-level scalars or arrays.
var ErrNotDocument = errors.New("bson: root is not a document")

// bsonCodec implements imprint.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. Documents keep the captured field order.
func New() imprint.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v imprint.Value) ([]byte, error) {
	p, err := imprint.Plain(v)
	if err != nil {
		return nil, err
	}
	obj, ok := p.(imprint.Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotDocument, v)
	}
	return bson.Marshal(document(obj))
}

func document(o imprint.Object) bson.D {
	d := make(bson.D, 0, len(o))
	for _, m := range o {
		d = append(d, bson.E{Key: m.Key, Value: convert(m.Value)})
	}
	return d
}

func convert(p any) any {
	switch v := p.(type) {
	case imprint.Object:
		return document(v)
	case []any:
		a := make(bson.A, len(v))
		for i, e := range v {
			a[i] = convert(e)
		}
		return a
	}
	return p
}
