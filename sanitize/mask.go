package sanitize

import (
	"net/netip"
	"strconv"
	"strings"
	"unicode"
)

// MaskType names a known data format with a masking rule.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-41d4-a716-446655440000 -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// MaskFunc adapts a function to Masker.
type MaskFunc func(value string) string

// Mask calls f(value).
func (f MaskFunc) Mask(value string) string { return f(value) }

func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSSN:   MaskFunc(maskSSN),
		MaskEmail: MaskFunc(maskEmail),
		MaskPhone: MaskFunc(maskPhone),
		MaskCard:  MaskFunc(maskCard),
		MaskIP:    MaskFunc(maskIP),
		MaskUUID:  MaskFunc(maskUUID),
		MaskIBAN:  MaskFunc(maskIBAN),
		MaskName:  MaskFunc(maskName),
	}
}

// stars replaces every rune of s.
func stars(s string) string {
	return strings.Repeat("*", len([]rune(s)))
}

func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// lastFour returns the final four digits of s, or false if it has fewer.
func lastFour(s string) (string, bool) {
	d := digitsOf(s)
	if len(d) < 4 {
		return "", false
	}
	return d[len(d)-4:], true
}

func maskSSN(v string) string {
	tail, ok := lastFour(v)
	if !ok {
		return stars(v)
	}
	return "***-**-" + tail
}

func maskEmail(v string) string {
	at := strings.LastIndex(v, "@")
	if at < 1 {
		return stars(v)
	}
	first := []rune(v[:at])[0]
	return string(first) + "***" + v[at:]
}

func maskPhone(v string) string {
	tail, ok := lastFour(v)
	if !ok {
		return stars(v)
	}
	n := len(digitsOf(v))
	switch {
	case n >= 10 && strings.HasPrefix(v, "("):
		return "(***) ***-" + tail
	case n >= 10:
		return "***-***-" + tail
	}
	return "***-" + tail
}

func maskCard(v string) string {
	tail, ok := lastFour(v)
	if !ok {
		return stars(v)
	}
	n := len(digitsOf(v))
	var sep string
	switch {
	case strings.Contains(v, " "):
		sep = " "
	case strings.Contains(v, "-"):
		sep = "-"
	default:
		return strings.Repeat("*", n-4) + tail
	}
	groups := make([]string, (n-4+3)/4, (n-4+3)/4+1)
	for i := range groups {
		groups[i] = "****"
	}
	return strings.Join(append(groups, tail), sep)
}

// maskIP keeps the network half of an address: the first two octets of IPv4,
// the first four groups of IPv6.
func maskIP(v string) string {
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return stars(v)
	}
	if addr.Is4() {
		b := addr.As4()
		return strconv.Itoa(int(b[0])) + "." + strconv.Itoa(int(b[1])) + ".xxx.xxx"
	}
	groups := strings.Split(addr.StringExpanded(), ":")
	return strings.Join(groups[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
}

func maskUUID(v string) string {
	parts := strings.Split(v, "-")
	if len(parts) != 5 {
		return stars(v)
	}
	return parts[0] + "-****-****-****-************"
}

func maskIBAN(v string) string {
	if len(v) <= 8 {
		return stars(v)
	}
	return v[:4] + strings.Repeat("*", len(v)-8) + v[len(v)-4:]
}

func maskName(v string) string {
	words := strings.Fields(v)
	for i, w := range words {
		r := []rune(w)
		words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
	}
	return strings.Join(words, " ")
}
