// Package json provides a JSON codec for captured trees.
package json

import (
	"bytes"

	gojson "github.com/goccy/go-json"
	"github.com/zoobzio/imprint"
)

// jsonCodec implements imprint.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Struct fields and string-keyed map entries keep
// their captured order.
func New() imprint.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v imprint.Value) ([]byte, error) {
	p, err := imprint.Plain(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encode writes p with objects and arrays laid out by hand so member order
// survives. Everything else goes through go-json.
func encode(buf *bytes.Buffer, p any) error {
	switch n := p.(type) {
	case imprint.Object:
		buf.WriteByte('{')
		for i, m := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := scalar(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, e := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	return scalar(buf, p)
}

func scalar(buf *bytes.Buffer, v any) error {
	data, err := gojson.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
