// Package yaml provides a YAML codec for captured trees.
package yaml

import (
	"encoding/base64"

	"github.com/zoobzio/imprint"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements imprint.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec. Mappings keep the captured field and entry order.
func New() imprint.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v imprint.Value) ([]byte, error) {
	p, err := imprint.Plain(v)
	if err != nil {
		return nil, err
	}
	n, err := node(p)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// node builds the document tree for p. Mapping nodes are assembled member by
// member because yaml.v3 sorts the keys of Go maps.
func node(p any) (*yaml.Node, error) {
	switch v := p.(type) {
	case imprint.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v {
			val, err := node(m.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v {
			child, err := node(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case []byte:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(v),
		}, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(p); err != nil {
		return nil, err
	}
	return n, nil
}
