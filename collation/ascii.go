// Package collation provides the string comparison primitives used for rank
// building: 7-bit classification, ordinal case folding, and locale-aware
// three-way comparators.
package collation

import "unicode/utf8"

// IsASCII reports whether every code unit of s lies in the 7-bit range.
// The empty string classifies as ASCII.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// FoldASCII lower-cases the ASCII letters of s byte by byte, without any
// locale involvement. Strings without upper case letters are returned
// unchanged, without allocating.
func FoldASCII(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			break
		}
	}

	if i == len(s) {
		return s
	}

	folded := []byte(s)
	for ; i < len(folded); i++ {
		if folded[i] >= 'A' && folded[i] <= 'Z' {
			folded[i] += 'a' - 'A'
		}
	}

	return string(folded)
}
