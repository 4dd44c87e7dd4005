package sql

import (
	"strconv"
)

// parseSelect parses the part of a SELECT statement after the keyword.
// Supported form (case-insensitive keywords):
//
//	SELECT * FROM users;
//	SELECT id, name FROM users LIMIT 10
//
// No other clause is accepted.
func parseSelect(rest string) (Statement, error) {
	// At this point rest is normalized and starts after the SELECT keyword.
	ts := &tokenStream{toks: lex(stripSemicolon(rest))}

	// Field list: "*" or "a, b, c".
	cols, err := parseSelectFields(ts)
	if err != nil {
		return nil, err
	}

	if !ts.keyword("FROM") {
		return nil, failf(ErrMalformedSelect, "expected FROM after field list")
	}
	table, ok := ts.word()
	if !ok {
		return nil, failf(ErrMalformedSelect, "missing table name")
	}

	stmt := &SelectStmt{TableName: table, Columns: cols}

	// Optional LIMIT.
	if ts.keyword("LIMIT") {
		n, ok := ts.word()
		if !ok || !isDigits(n) {
			return nil, failf(ErrMalformedSelect, "LIMIT requires a non-negative integer")
		}
		limit, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return nil, failf(ErrMalformedSelect, "LIMIT %s out of range", n)
		}
		stmt.HasLimit = true
		stmt.Limit = limit
	}

	// Nothing may follow.
	if t, ok := ts.peek(); ok {
		return nil, failf(ErrMalformedSelect, "unexpected %q after table name", t.text)
	}
	return stmt, nil
}

// parseSelectFields parses "*" or "a, b, c". A nil slice means "*".
func parseSelectFields(ts *tokenStream) ([]string, error) {
	if t, ok := ts.peek(); ok && t.kind == tokStar {
		ts.next()
		return nil, nil
	}

	var cols []string
	for {
		name, ok := ts.word()
		if !ok {
			return nil, failf(ErrMalformedSelect, "expected field name")
		}
		cols = append(cols, name)

		t, ok := ts.peek()
		if !ok || t.kind != tokComma {
			return cols, nil
		}
		ts.next()
	}
}
