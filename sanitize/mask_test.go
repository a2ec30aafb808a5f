package sanitize

import (
	"testing"
)

func TestBuiltinMaskers(t *testing.T) {
	maskers := builtinMaskers()

	tests := []struct {
		mt    MaskType
		input string
		want  string
	}{
		{MaskSSN, "123-45-6789", "***-**-6789"},
		{MaskSSN, "123456789", "***-**-6789"},
		{MaskSSN, "123", "***"},
		{MaskEmail, "alice@example.com", "a***@example.com"},
		{MaskEmail, "a@b.com", "a***@b.com"},
		{MaskEmail, "noatsign", "********"},
		{MaskPhone, "(555) 123-4567", "(***) ***-4567"},
		{MaskPhone, "555-123-4567", "***-***-4567"},
		{MaskPhone, "123-4567", "***-4567"},
		{MaskPhone, "12", "**"},
		{MaskCard, "4111111111111111", "************1111"},
		{MaskCard, "4111 1111 1111 1111", "**** **** **** 1111"},
		{MaskCard, "4111-1111-1111-1111", "****-****-****-1111"},
		{MaskIP, "192.168.1.100", "192.168.xxx.xxx"},
		{MaskIP, "2001:db8::1", "2001:0db8:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskIP, "not-an-ip", "*********"},
		{MaskUUID, "550e8400-e29b-41d4-a716-446655440000", "550e8400-****-****-****-************"},
		{MaskUUID, "short", "*****"},
		{MaskIBAN, "GB82WEST12345698765432", "GB82**************5432"},
		{MaskIBAN, "GB82", "****"},
		{MaskName, "John Smith", "J*** S****"},
		{MaskName, "Zoë", "Z**"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mt)+"/"+tt.input, func(t *testing.T) {
			got := maskers[tt.mt].Mask(tt.input)
			if got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskFunc(t *testing.T) {
	m := MaskFunc(func(string) string { return "x" })
	if got := m.Mask("anything"); got != "x" {
		t.Errorf("Mask() = %q, want %q", got, "x")
	}
}
