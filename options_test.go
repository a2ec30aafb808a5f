package imprint

import (
	"context"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := newConfig(nil)

	if c.mode != ShortCircuit {
		t.Errorf("mode = %v, want %v", c.mode, ShortCircuit)
	}
	if !c.checking {
		t.Error("checking should be enabled by default")
	}
	if !c.humanReadable {
		t.Error("humanReadable should be true by default")
	}
	if c.variantChecking {
		t.Error("variantChecking should be disabled by default")
	}
	if c.maxHint != DefaultMaxLengthHint {
		t.Errorf("maxHint = %d, want %d", c.maxHint, DefaultMaxLengthHint)
	}
	if c.ctx == nil {
		t.Error("ctx should default to a background context")
	}
}

func TestOptions(t *testing.T) {
	ctx := context.WithValue(context.Background(), struct{}{}, 1)
	c := newConfig([]CaptureOption{
		WithErrorMode(Persist),
		WithProtocolChecking(false),
		WithHumanReadable(false),
		WithVariantChecking(true),
		WithMaxLengthHint(64),
		WithContext(ctx),
	})

	if c.mode != Persist {
		t.Errorf("mode = %v, want %v", c.mode, Persist)
	}
	if c.checking {
		t.Error("checking should be disabled")
	}
	if c.humanReadable {
		t.Error("humanReadable should be false")
	}
	if !c.variantChecking {
		t.Error("variantChecking should be enabled")
	}
	if c.maxHint != 64 {
		t.Errorf("maxHint = %d, want 64", c.maxHint)
	}
	if c.ctx != ctx {
		t.Error("ctx was not applied")
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	//nolint:staticcheck // a nil context is the case under test
	c := newConfig([]CaptureOption{WithMaxLengthHint(-1), WithContext(nil)})

	if c.maxHint != DefaultMaxLengthHint {
		t.Errorf("maxHint = %d, want %d", c.maxHint, DefaultMaxLengthHint)
	}
	if c.ctx == nil {
		t.Error("nil context should be ignored")
	}
}

func TestErrorMode_String(t *testing.T) {
	tests := []struct {
		mode ErrorMode
		want string
	}{
		{ShortCircuit, "short-circuit"},
		{Persist, "persist"},
		{ErrorMode(9), "ErrorMode(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ErrorMode
		wantErr bool
	}{
		{"short-circuit", ShortCircuit, false},
		{"shortcircuit", ShortCircuit, false},
		{"", ShortCircuit, false},
		{"persist", Persist, false},
		{"lenient", ShortCircuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseErrorMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseErrorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseErrorMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorMode_Text(t *testing.T) {
	text, err := Persist.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(text) != "persist" {
		t.Errorf("MarshalText() = %q, want %q", text, "persist")
	}

	var m ErrorMode
	if err := m.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if m != Persist {
		t.Errorf("UnmarshalText() = %v, want %v", m, Persist)
	}

	if _, err := ErrorMode(7).MarshalText(); err == nil {
		t.Error("MarshalText() should reject unknown modes")
	}
	if err := m.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText() should reject unknown modes")
	}
}
