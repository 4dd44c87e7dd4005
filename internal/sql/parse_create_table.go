package sql

import (
	"strings"
)

// parseCreateTable parses the part of a CREATE TABLE statement after the
// keyword, e.g. " users (id INT, name STRING, vec LIST[FLOAT]);".
func parseCreateTable(rest string) (Statement, error) {
	// At this point:
	// - the statement is normalized and its parentheses are balanced
	// - rest starts right after the CREATE TABLE keyword
	q := stripSemicolon(strings.TrimSpace(rest))

	// Find the opening parenthesis for column list.
	openIdx := strings.IndexByte(q, '(')
	if openIdx == -1 {
		return nil, failf(ErrMalformedCreateTableShape, "missing '('")
	}
	// The column list must run to the end of the statement.
	if !strings.HasSuffix(q, ")") {
		return nil, failf(ErrMalformedCreateTableShape, "unexpected text after column list")
	}

	// "users (" → "users"
	table := strings.TrimSpace(q[:openIdx])
	if !isIdentifier(table) {
		return nil, failf(ErrMalformedCreateTableShape, "invalid table name %q", table)
	}

	// "colsPart" contains everything between '(' and the final ')'.
	colsPart := strings.TrimSpace(q[openIdx+1 : len(q)-1])
	if colsPart == "" {
		return nil, failf(ErrMalformedCreateTableShape, "no column definitions")
	}

	// Split column definitions by top-level commas.
	defs, err := splitTopLevel(colsPart)
	if err != nil {
		return nil, failf(ErrMalformedCreateTableShape, "%v", err)
	}

	columns := make([]Column, 0, len(defs))
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		col, err := parseColumnDef(def)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		names = append(names, col.Name)
	}

	// A table cannot declare the same column twice.
	if dup, found := firstDuplicate(names); found {
		return nil, failf(ErrMalformedCreateTableShape, "duplicate column %q", dup)
	}

	return &CreateTableStmt{
		TableName: table,
		Columns:   columns,
	}, nil
}

// parseColumnDef parses "name TYPE". Only LIST[...] may contain further
// spaces, and only inside its brackets.
func parseColumnDef(def string) (Column, error) {
	// "tags LIST[ STRING ]" → "tags", "LIST[ STRING ]"
	name, typ, ok := strings.Cut(def, " ")
	if !ok || typ == "" {
		return Column{}, failf(ErrMalformedCreateTableShape, "invalid column definition %q", def)
	}
	if !isIdentifier(name) {
		return Column{}, failf(ErrMalformedCreateTableShape, "invalid column name %q", name)
	}

	// Anything after a scalar type, e.g. "INT PRIMARY KEY", is an extra token.
	isList := len(typ) >= len("LIST[") && strings.EqualFold(typ[:len("LIST[")], "LIST[")
	if !isList && strings.Contains(typ, " ") {
		return Column{}, failf(ErrMalformedCreateTableShape, "invalid column definition %q", def)
	}

	ct, err := parseColumnType(typ)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Type: ct}, nil
}
