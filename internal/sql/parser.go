package sql

import (
	"strings"
)

const (
	cmdSelect      = "SELECT"
	cmdInsertInto  = "INSERT INTO"
	cmdCreateTable = "CREATE TABLE"
)

// commands is ordered longest keyword first so that a longer keyword always
// wins over a shorter one sharing its prefix.
var commands = []struct {
	keyword string
	parse   func(rest string) (Statement, error)
	shape   error
}{
	{cmdCreateTable, parseCreateTable, ErrMalformedCreateTableShape},
	{cmdInsertInto, parseInsert, ErrMalformedInsertShape},
	{cmdSelect, parseSelect, ErrMalformedSelect},
}

// Validate checks a single statement against the restricted dialect and
// returns its parsed shape. Supported statements:
//
//	SELECT <fields> FROM <table> [LIMIT <n>] [;]
//	INSERT INTO <table> (<cols>) VALUES (<vals>)[, (<vals>)]* [;]
//	CREATE TABLE <table> (<name> <type>[, <name> <type>]*) [;]
//
// The returned error wraps one of the Err* sentinels of this package.
// Validate holds no state and is safe for concurrent use.
func Validate(statement string) (Statement, error) {
	q := Normalize(statement)
	if q == "" {
		return nil, ErrEmptyInput
	}

	if !parensBalanced(q) {
		return nil, ErrUnbalancedParentheses
	}

	for _, c := range commands {
		rest, ok := cutKeyword(q, c.keyword)
		if !ok {
			continue
		}
		if !strings.HasPrefix(rest, " ") {
			return nil, failf(c.shape, "expected whitespace after %s", c.keyword)
		}
		return c.parse(rest)
	}

	return nil, failf(ErrUnrecognizedCommand, "supported: SELECT, INSERT INTO, CREATE TABLE")
}

// IsValid reports whether Validate accepts the statement.
func IsValid(statement string) bool {
	_, err := Validate(statement)
	return err == nil
}

// cutKeyword strips a case-insensitive leading keyword from s. The keyword
// must end at a word boundary.
func cutKeyword(s, kw string) (string, bool) {
	if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
		return "", false
	}
	rest := s[len(kw):]
	if rest != "" && isIdentChar(rest[0]) {
		return "", false
	}
	return rest, true
}
