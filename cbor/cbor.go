// Package cbor provides a CBOR codec for captured trees.
package cbor

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/imprint"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. The same tree always
// produces identical bytes, so captured field order is not preserved.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}
}

// cborCodec implements imprint.Codec for CBOR.
type cborCodec struct{}

// New returns a CBOR codec.
func New() imprint.Codec {
	return &cborCodec{}
}

// ContentType returns the MIME type for CBOR.
func (c *cborCodec) ContentType() string {
	return "application/cbor"
}

// Marshal encodes v as deterministic CBOR.
func (c *cborCodec) Marshal(v imprint.Value) ([]byte, error) {
	p, err := imprint.Plain(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(convert(p))
}

// convert turns objects into Go maps for the encoder. A repeated key keeps
// its last value.
func convert(p any) any {
	switch v := p.(type) {
	case imprint.Object:
		m := make(map[string]any, len(v))
		for _, mem := range v {
			m[mem.Key] = convert(mem.Value)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = convert(e)
		}
		return out
	}
	return p
}
