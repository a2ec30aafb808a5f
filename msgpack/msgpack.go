// Package msgpack provides a MessagePack codec for captured trees.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/imprint"
)

// msgpackCodec implements imprint.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. Maps are written in captured order.
func New() imprint.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v imprint.Value) ([]byte, error) {
	p, err := imprint.Plain(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encode(enc, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(enc *msgpack.Encoder, p any) error {
	switch v := p.(type) {
	case imprint.Object:
		if err := enc.EncodeMapLen(len(v)); err != nil {
			return err
		}
		for _, m := range v {
			if err := enc.EncodeString(m.Key); err != nil {
				return err
			}
			if err := encode(enc, m.Value); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, e := range v {
			if err := encode(enc, e); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(p)
}
