package imprint

import (
	"strings"
)

// checker is the protocol-invariant policy of one capture. Every method is a
// no-op returning nil when checking is disabled.
type checker struct {
	enabled bool

	// variant consistency, tracked per enum type when enabled
	variants bool
	byIndex  map[string]map[uint32]string
	byName   map[string]map[string]uint32
}

func newChecker(cfg config) checker {
	return checker{
		enabled:  cfg.checking,
		variants: cfg.checking && cfg.variantChecking,
	}
}

// hint validates a declared length. Malformed hints are rejected whether or
// not checking is enabled: they are bad input, not a broken sequence.
func (c *checker) hint(path Path, hint int, allowUnknown bool, maxHint int) error {
	if hint == UnknownLength && allowUnknown {
		return nil
	}
	if hint < 0 {
		return newProtocolError(ErrMalformedHint, path, "negative length %d", hint)
	}
	if hint > maxHint {
		return newProtocolError(ErrMalformedHint, path, "length %d exceeds limit %d", hint, maxHint)
	}
	return nil
}

// unclosed reports a container still open when its child returned or when a
// recorder finished.
func (c *checker) unclosed(path Path, f *frame) error {
	if !c.enabled {
		return nil
	}
	return newProtocolError(ErrUnbalanced, path, "%s opened but never ended", f.kind)
}

// stray reports an End with no container open.
func (c *checker) stray(path Path) error {
	if !c.enabled {
		return nil
	}
	return newProtocolError(ErrUnbalanced, path, "End with no open container")
}

// extra reports a second value arriving in a slot that already holds one.
func (c *checker) extra(path Path, slot *frame) error {
	if !c.enabled || len(slot.values) == 0 {
		return nil
	}
	return newProtocolError(ErrExtraValue, path, "a %s slot accepts exactly one value", roleName(slot.role))
}

// missing reports a child that returned without producing a value.
func (c *checker) missing(path Path, slot *frame) error {
	if !c.enabled || len(slot.values) != 0 {
		return nil
	}
	return newProtocolError(ErrMissingValue, path, "%s produced no value", roleName(slot.role))
}

// key reports a map key arriving while the previous key still waits for its
// value.
func (c *checker) key(path Path, f *frame) error {
	if !c.enabled || !f.awaitingValue {
		return nil
	}
	return newProtocolError(ErrUnpairedKey, path, "two keys in a row (entry %d)", len(f.keys)-1)
}

// value reports a map value arriving without a key before it.
func (c *checker) value(path Path, f *frame) error {
	if !c.enabled || f.awaitingValue {
		return nil
	}
	return newProtocolError(ErrUnpairedValue, path, "value without key (entry %d)", len(f.values))
}

// close validates a container that is about to be materialized.
func (c *checker) close(path Path, f *frame) error {
	if !c.enabled {
		return nil
	}
	if f.kind == frameMap && (f.awaitingValue || len(f.keys) != len(f.values)) {
		return newProtocolError(ErrUnpairedKey, path, "map has %d keys and %d values", len(f.keys), len(f.values))
	}
	if f.kind == frameStruct || f.kind == frameStructVariant {
		if dups := duplicateFields(f.fields); len(dups) > 0 {
			return newProtocolError(ErrDuplicateField, path, "%s has duplicate field names: %s",
				f.kind, strings.Join(dups, ", "))
		}
	}
	if f.hint != UnknownLength && f.hint != f.count() {
		return newProtocolError(ErrLengthMismatch, path, "expected a %s of length %d, got %d",
			f.kind, f.hint, f.count())
	}
	return nil
}

// variant validates that one enum type keeps a one-to-one mapping between
// variant indices and names for the lifetime of the capture.
func (c *checker) variant(path Path, v Variant) error {
	if !c.variants {
		return nil
	}
	if c.byIndex == nil {
		c.byIndex = make(map[string]map[uint32]string)
		c.byName = make(map[string]map[string]uint32)
	}
	names, ok := c.byIndex[v.Type]
	if !ok {
		names = make(map[uint32]string)
		c.byIndex[v.Type] = names
		c.byName[v.Type] = make(map[string]uint32)
	}
	indices := c.byName[v.Type]

	if name, seen := names[v.Index]; seen && name != v.Name {
		return newProtocolError(ErrVariantConflict, path, "%s index %d reported as both %q and %q",
			v.Type, v.Index, name, v.Name)
	}
	if index, seen := indices[v.Name]; seen && index != v.Index {
		return newProtocolError(ErrVariantConflict, path, "%s variant %q reported with indices %d and %d",
			v.Type, v.Name, index, v.Index)
	}
	names[v.Index] = v.Name
	indices[v.Name] = v.Index
	return nil
}

// duplicateFields returns each field name written more than once, in order
// of first repetition.
func duplicateFields(fields []Field) []string {
	if len(fields) < 2 {
		return nil
	}
	seen := make(map[string]int, len(fields))
	var dups []string
	for _, f := range fields {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dups = append(dups, f.Name)
		}
	}
	return dups
}

func roleName(r slotRole) string {
	switch r {
	case roleRoot:
		return "root"
	case roleInner:
		return "payload"
	case roleElement:
		return "element"
	case roleKey:
		return "map key"
	case roleValue:
		return "map value"
	case roleField:
		return "field"
	}
	return "value"
}
