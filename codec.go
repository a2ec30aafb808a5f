package imprint

// Codec renders a captured tree in a wire format.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes. Trees containing Error leaves fail with a
	// *LeafError naming the first one.
	Marshal(v Value) ([]byte, error)
}

// Encode captures v and marshals the resulting tree with c.
func Encode(c Codec, v Serializable, opts ...CaptureOption) ([]byte, error) {
	tree, err := Capture(v, opts...)
	if err != nil {
		return nil, err
	}
	return c.Marshal(tree)
}
