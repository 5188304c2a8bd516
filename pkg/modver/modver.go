// SPDX-License-Identifier: MPL-2.0

// Package modver compares free-form version strings.
//
// Unlike strict semver, mod authors write whatever they like in the version
// field ("1.2", "1.2.1-beta", "2024.01"). Compare imposes a total order on
// well-formed dotted versions and a best-effort order on everything else,
// which is all dependency floors need.
package modver

import (
	"strconv"
	"strings"
)

// Compare compares two version strings token-wise.
// It returns a negative value if a < b, zero if a == b, and a positive
// value if a > b.
//
// Each string is split into maximal runs of digits and maximal runs of
// non-digits. Tokens are compared pairwise: two digit runs compare
// numerically (so "1.10" > "1.9"), anything else compares as plain strings.
// If the common prefix ties, the version with more tokens is newer
// ("1.2.1" > "1.2").
func Compare(a, b string) int {
	at := tokenize(a)
	bt := tokenize(b)

	n := len(at)
	if len(bt) < n {
		n = len(bt)
	}

	for i := 0; i < n; i++ {
		if c := compareToken(at[i], bt[i]); c != 0 {
			return c
		}
	}

	return len(at) - len(bt)
}

// Less reports whether version a is strictly older than b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// compareToken compares a single token pair. Numeric comparison applies only
// when both tokens parse as integers; a run of digits too long for int64
// falls back to string comparison along with its counterpart.
func compareToken(a, b string) int {
	an, aerr := strconv.ParseInt(a, 10, 64)
	bn, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// tokenize splits s into maximal runs of digits and non-digits, preserving
// order. The empty string yields no tokens.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	start := 0
	digits := isDigit(rune(s[0]))
	for i, r := range s {
		if isDigit(r) != digits {
			tokens = append(tokens, s[start:i])
			start = i
			digits = !digits
		}
	}
	return append(tokens, s[start:])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
