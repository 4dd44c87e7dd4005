package sql

import "strings"

// Normalize collapses every whitespace run to a single space and trims the
// result. Applying it twice is the same as applying it once.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parensBalanced reports whether '(' and ')' nest correctly in s.
// Only parentheses are considered; quotes and brackets are ignored here.
func parensBalanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0
}
