package ril

import "strings"

// EmergencyNumberFunc reports if the given address is an emergency number.
type EmergencyNumberFunc func(address string) bool

// DefaultEmergencyNumbers are used when no other emergency numbers are configured.
var DefaultEmergencyNumbers = []string{"112", "911"}

// EmergencyNumbers returns an EmergencyNumberFunc that matches exactly the given numbers.
// Visual separators in the dialed address are ignored.
func EmergencyNumbers(numbers ...string) EmergencyNumberFunc {
	known := make(map[string]bool, len(numbers))
	for _, number := range numbers {
		known[stripSeparators(number)] = true
	}
	return func(address string) bool {
		stripped := stripSeparators(address)
		if stripped == "" {
			return false
		}
		return known[stripped]
	}
}

func stripSeparators(address string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '+', r == '*', r == '#':
			return r
		default:
			return -1
		}
	}, address)
}
