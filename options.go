package imprint

import (
	"context"
	"fmt"
	"math"
)

// ErrorMode selects how value errors raised during a capture are handled.
type ErrorMode uint8

const (
	// ShortCircuit aborts the capture on the first value error and returns it.
	ShortCircuit ErrorMode = iota

	// Persist records each value error as an Error leaf in place of the value
	// that failed and carries on with its siblings.
	Persist
)

func (m ErrorMode) String() string {
	switch m {
	case ShortCircuit:
		return "short-circuit"
	case Persist:
		return "persist"
	default:
		return fmt.Sprintf("ErrorMode(%d)", uint8(m))
	}
}

// ParseErrorMode parses "short-circuit" or "persist".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "short-circuit", "shortcircuit", "":
		return ShortCircuit, nil
	case "persist":
		return Persist, nil
	default:
		return ShortCircuit, fmt.Errorf("unknown error mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ErrorMode) MarshalText() ([]byte, error) {
	if m > Persist {
		return nil, fmt.Errorf("unknown error mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ErrorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseErrorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// DefaultMaxLengthHint is the largest length hint accepted by default.
const DefaultMaxLengthHint = math.MaxInt32

// config holds the options of one capture. It is resolved once at the entry
// point and copied into the capture.
type config struct {
	ctx             context.Context
	mode            ErrorMode
	checking        bool
	humanReadable   bool
	variantChecking bool
	maxHint         int
}

func defaultConfig() config {
	return config{
		ctx:           context.Background(),
		mode:          ShortCircuit,
		checking:      true,
		humanReadable: true,
		maxHint:       DefaultMaxLengthHint,
	}
}

// CaptureOption configures a capture.
type CaptureOption func(*config)

// WithErrorMode selects the error mode. The default is ShortCircuit.
func WithErrorMode(m ErrorMode) CaptureOption {
	return func(c *config) { c.mode = m }
}

// WithProtocolChecking enables or disables the invariant checker. Checking is
// on by default; when off, the engine builds a tree from whatever call
// sequence it receives.
func WithProtocolChecking(enabled bool) CaptureOption {
	return func(c *config) { c.checking = enabled }
}

// WithHumanReadable sets the answer of Serializer.HumanReadable. Defaults to
// true, matching the convention of text formats.
func WithHumanReadable(enabled bool) CaptureOption {
	return func(c *config) { c.humanReadable = enabled }
}

// WithVariantChecking additionally verifies that, within one capture, each
// enum type maps every variant index to a single name and back. Off by
// default; ignored when protocol checking is disabled.
func WithVariantChecking(enabled bool) CaptureOption {
	return func(c *config) { c.variantChecking = enabled }
}

// WithMaxLengthHint sets the largest length hint accepted before a container
// open is rejected as malformed.
func WithMaxLengthHint(n int) CaptureOption {
	return func(c *config) {
		if n >= 0 {
			c.maxHint = n
		}
	}
}

// WithContext sets the context passed to emitted events. Captures are
// synchronous and are not cancelled through it.
func WithContext(ctx context.Context) CaptureOption {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func newConfig(opts []CaptureOption) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
