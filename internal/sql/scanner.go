package sql

import (
	"errors"
	"fmt"
	"strings"
)

// scanState is the lexical context the scanner is in.
type scanState int

const (
	stateDefault scanState = iota
	stateInQuote
	stateInBracket
)

// scanner tracks quote, bracket and parenthesis context one byte at a time.
// Inside a quoted string everything is literal except the closing quote;
// a backslash escapes the following byte. Inside brackets only '[' and ']'
// are significant.
type scanner struct {
	state    scanState
	brackets int
	parens   int
	escaped  bool
}

func (sc *scanner) step(c byte) {
	switch sc.state {
	case stateDefault:
		switch c {
		case '\'':
			sc.state = stateInQuote
		case '[':
			sc.state = stateInBracket
			sc.brackets = 1
		case '(':
			sc.parens++
		case ')':
			if sc.parens > 0 {
				sc.parens--
			}
		}
	case stateInQuote:
		switch {
		case sc.escaped:
			sc.escaped = false
		case c == '\\':
			sc.escaped = true
		case c == '\'':
			sc.state = stateDefault
		}
	case stateInBracket:
		switch c {
		case '[':
			sc.brackets++
		case ']':
			sc.brackets--
			if sc.brackets == 0 {
				sc.state = stateDefault
			}
		}
	}
}

// topLevel reports whether the scanner is outside any quote, bracket or
// parenthesis.
func (sc *scanner) topLevel() bool {
	return sc.state == stateDefault && sc.parens == 0
}

// finish returns an error when the input ended inside a quote or bracket.
func (sc *scanner) finish() error {
	switch sc.state {
	case stateInQuote:
		return errors.New("unterminated string literal")
	case stateInBracket:
		return errors.New("unclosed '['")
	}
	return nil
}

// splitTopLevel splits s on commas that are not inside a string literal,
// an array literal or parentheses. Every part is trimmed; empty parts are
// kept so callers can reject them.
func splitTopLevel(s string) ([]string, error) {
	var sc scanner
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ',' && sc.topLevel() {
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
			continue
		}
		sc.step(c)
	}
	if err := sc.finish(); err != nil {
		return nil, err
	}
	return append(parts, strings.TrimSpace(s[start:])), nil
}

// splitGroups splits the tail of an INSERT after VALUES into the contents of
// its parenthesized groups, e.g. "(1, 'a'), (2, 'b')" → ["1, 'a'", "2, 'b'"].
// Groups are separated by exactly one comma; any other text between or after
// groups is an error.
func splitGroups(s string) ([]string, error) {
	var (
		sc          scanner
		groups      []string
		start       = -1
		expectComma bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if start < 0 {
			switch {
			case c == ' ':
			case c == ',' && expectComma:
				expectComma = false
			case c == '(' && !expectComma:
				start = i
				sc = scanner{}
				sc.step(c)
			default:
				return nil, fmt.Errorf("unexpected %q at offset %d", c, i)
			}
			continue
		}

		sc.step(c)
		if c == ')' && sc.topLevel() {
			groups = append(groups, s[start+1:i])
			start = -1
			expectComma = true
		}
	}

	if start >= 0 {
		if err := sc.finish(); err != nil {
			return nil, err
		}
		return nil, errors.New("unterminated value group")
	}
	if len(groups) == 0 {
		return nil, errors.New("no value groups")
	}
	if !expectComma {
		return nil, errors.New("trailing comma after last value group")
	}
	return groups, nil
}
