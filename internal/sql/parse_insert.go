package sql

import (
	"strings"
)

// parseInsert parses the part of an INSERT statement after "INSERT INTO".
// Example supported syntax:
//
//	INSERT INTO users (id, name, vec) VALUES (1, 'Alice', [0.1, 0.2]), (2, 'Bob', [0.3]);
func parseInsert(rest string) (Statement, error) {
	// At this point:
	// - the statement is normalized and its parentheses are balanced
	// - rest starts right after the INSERT INTO keyword
	q := stripSemicolon(strings.TrimSpace(rest))

	// The table name is everything before the column list.
	openIdx := strings.IndexByte(q, '(')
	if openIdx == -1 {
		return nil, failf(ErrMalformedInsertShape, "missing column list")
	}
	table := strings.TrimSpace(q[:openIdx])
	if !isIdentifier(table) {
		return nil, failf(ErrMalformedInsertShape, "invalid table name %q", table)
	}

	// Column names cannot contain ')', so the first one closes the list.
	closeIdx := strings.IndexByte(q[openIdx:], ')')
	if closeIdx == -1 {
		return nil, failf(ErrMalformedInsertShape, "missing ')' after column list")
	}
	closeIdx += openIdx

	// "id, name, vec" → ["id", "name", "vec"]
	cols, bad, ok := splitIdentifiers(q[openIdx+1 : closeIdx])
	if !ok {
		return nil, failf(ErrMalformedInsertShape, "invalid column name %q", bad)
	}
	if dup, found := firstDuplicate(cols); found {
		return nil, failf(ErrMalformedInsertShape, "duplicate column %q", dup)
	}

	// Expect VALUES (case-insensitive), followed by a space or the first group.
	tail := strings.TrimSpace(q[closeIdx+1:])
	if len(tail) < len("VALUES") || !strings.EqualFold(tail[:len("VALUES")], "VALUES") {
		return nil, failf(ErrMalformedInsertShape, "expected VALUES after column list")
	}
	tail = tail[len("VALUES"):]
	if tail != "" && tail[0] != ' ' && tail[0] != '(' {
		return nil, failf(ErrMalformedInsertShape, "expected VALUES after column list")
	}

	// Split "(1, 'a'), (2, 'b')" into one string per group.
	groups, err := splitGroups(strings.TrimSpace(tail))
	if err != nil {
		return nil, failf(ErrMalformedInsertShape, "VALUES: %v", err)
	}

	// Every group is checked on its own against the column list.
	rows := make([]Row, 0, len(groups))
	for gi, g := range groups {
		row, err := parseValueGroup(g, len(cols), gi+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &InsertStmt{
		TableName: table,
		Columns:   cols,
		Rows:      rows,
	}, nil
}

// parseValueGroup tokenizes and types the inside of one "( ... )" group.
// group is 1-based and only used in error messages.
func parseValueGroup(inner string, arity, group int) (Row, error) {
	// Commas inside '...' and [...] do not split values.
	toks, err := splitTopLevel(inner)
	if err != nil {
		return nil, failf(ErrInvalidValueToken, "group %d: %v", group, err)
	}
	if len(toks) != arity {
		return nil, arityError(group, len(toks), arity)
	}

	row := make(Row, 0, len(toks))
	for _, tok := range toks {
		v, err := classifyValue(tok)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}
