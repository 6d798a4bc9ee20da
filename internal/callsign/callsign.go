// Package callsign converts radio callsigns into the IATA-style flight codes
// used by commercial status lookups. All functions are pure: they never fail
// and never touch the network.
package callsign

import (
	"strings"

	"github.com/jengzang/flighttrack-backend-go/internal/airline"
)

// Normalize trims surrounding whitespace and upper-cases a raw callsign.
// Empty input yields empty output.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// conversionRule is one step of the flight-code conversion chain. It returns
// the derived code and whether it applied; rules are evaluated in order and
// the first that applies wins.
type conversionRule func(clean string, reg *airline.Registry) (string, bool)

var conversionRules = []conversionRule{
	alreadyCommercial,
	operatorPrefix,
	passthrough,
}

// ToFlightCode derives the commercial flight code from a normalized callsign.
// Total and deterministic: unconvertible input falls through unchanged.
func ToFlightCode(normalized string, reg *airline.Registry) string {
	clean := strings.ToUpper(stripNonAlnum(normalized))
	if clean == "" {
		return ""
	}
	for _, rule := range conversionRules {
		if code, ok := rule(clean, reg); ok {
			return code
		}
	}
	return clean
}

// alreadyCommercial matches <2 letters><digits>, e.g. "AA1280".
func alreadyCommercial(clean string, _ *airline.Registry) (string, bool) {
	if len(clean) >= 3 && isAlpha(clean[:2]) && isDigits(clean[2:]) {
		return clean, true
	}
	return "", false
}

// operatorPrefix matches <3 letters><tail containing a digit> and maps the
// ICAO operator prefix through the registry, e.g. "DAL2966" -> "DL2966".
// An unmapped prefix falls back to its first two letters as a guess.
func operatorPrefix(clean string, reg *airline.Registry) (string, bool) {
	if len(clean) < 4 || !isAlpha(clean[:3]) || !containsDigit(clean[3:]) {
		return "", false
	}
	prefix, tail := clean[:3], clean[3:]
	if iata, ok := reg.Lookup(prefix); ok {
		return iata + tail, true
	}
	return prefix[:2] + tail, true
}

// passthrough accepts anything left over as a last resort.
func passthrough(clean string, _ *airline.Registry) (string, bool) {
	return clean, true
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return len(s) > 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
