package sql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyInput(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n  \r\n"} {
		_, err := Validate(q)
		require.ErrorIs(t, err, ErrEmptyInput, "input %q", q)
		assert.Equal(t, "EmptyInput", KindOf(err))
	}
}

func TestValidate_UnbalancedParentheses(t *testing.T) {
	cases := []string{
		"INSERT INTO t (id VALUES (1)",
		"CREATE TABLE t (id INT))",
		"SELECT * FROM t )(",
		"DROP TABLE (t",
	}
	for _, q := range cases {
		_, err := Validate(q)
		assert.ErrorIs(t, err, ErrUnbalancedParentheses, "input %q", q)
	}
}

func TestValidate_UnrecognizedCommand(t *testing.T) {
	cases := []string{
		"DROP TABLE t",
		"UPDATE t SET a = 1",
		"INSERT t (id) VALUES (1)",
		"SELECTED * FROM t",
		"CREATE INDEX i ON t (a)",
	}
	for _, q := range cases {
		_, err := Validate(q)
		assert.ErrorIs(t, err, ErrUnrecognizedCommand, "input %q", q)
		assert.False(t, IsValid(q))
	}
}

func TestParseSelect_Basic(t *testing.T) {
	stmt, err := Validate("SELECT * FROM users LIMIT 10")
	require.NoError(t, err)

	sel, ok := stmt.(*SelectStmt)
	require.True(t, ok, "expected *SelectStmt, got %T", stmt)
	assert.Equal(t, "users", sel.TableName)
	assert.Nil(t, sel.Columns)
	assert.True(t, sel.HasLimit)
	assert.EqualValues(t, 10, sel.Limit)
	assert.Equal(t, "SELECT", sel.Command())
}

func TestParseSelect_CaseAndSpaces(t *testing.T) {
	stmt, err := Validate("   select   id ,name,\n\tscore   from   Accounts   ; ")
	require.NoError(t, err)

	sel := stmt.(*SelectStmt)
	assert.Equal(t, "Accounts", sel.TableName)
	assert.Equal(t, []string{"id", "name", "score"}, sel.Columns)
	assert.False(t, sel.HasLimit)
}

func TestParseSelect_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative limit":   "SELECT * FROM users LIMIT -1",
		"fractional limit": "SELECT * FROM users LIMIT 1.5",
		"missing limit":    "SELECT * FROM users LIMIT",
		"missing from":     "SELECT * users",
		"missing table":    "SELECT * FROM",
		"two tables":       "SELECT * FROM a, b",
		"where clause":     "SELECT * FROM users WHERE id = 1",
		"order by":         "SELECT * FROM users ORDER BY id",
		"empty fields":     "SELECT FROM users",
		"star and column":  "SELECT *, id FROM users",
		"trailing comma":   "SELECT id, FROM users",
		"bad field":        "SELECT user.id FROM users",
		"no space":         "SELECT* FROM users",
		"keyword only":     "SELECT",
		"double semicolon": "SELECT * FROM users;;",
		"huge limit":       "SELECT * FROM users LIMIT 99999999999999999999",
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(q)
			assert.ErrorIs(t, err, ErrMalformedSelect)
			assert.Equal(t, "MalformedSelect", KindOf(err))
		})
	}
}

func TestParseInsert_Basic(t *testing.T) {
	stmt, err := Validate("INSERT INTO t (id, name) VALUES (1, 'a')")
	require.NoError(t, err)

	ins, ok := stmt.(*InsertStmt)
	require.True(t, ok, "expected *InsertStmt, got %T", stmt)
	assert.Equal(t, "t", ins.TableName)
	assert.Equal(t, []string{"id", "name"}, ins.Columns)
	require.Len(t, ins.Rows, 1)
	assert.Equal(t, Row{
		{Kind: ValueNumber, Raw: "1"},
		{Kind: ValueQuotedString, Raw: "'a'"},
	}, ins.Rows[0])
	assert.Equal(t, "INSERT INTO", ins.Command())
}

func TestParseInsert_NumericArray(t *testing.T) {
	stmt, err := Validate("INSERT INTO t (id, vec) VALUES (1, [0.1, 0.2, 0.3])")
	require.NoError(t, err)

	ins := stmt.(*InsertStmt)
	require.Len(t, ins.Rows, 1)
	vec := ins.Rows[0][1]
	assert.Equal(t, ValueNumericArray, vec.Kind)
	assert.Equal(t, []string{"0.1", "0.2", "0.3"}, vec.Elems)
}

func TestParseInsert_MultiRow(t *testing.T) {
	stmt, err := Validate("INSERT INTO t (id) VALUES (1), (2), (3)")
	require.NoError(t, err)
	assert.Len(t, stmt.(*InsertStmt).Rows, 3)

	stmt, err = Validate("insert into docs (id, title, emb) values (1, 'a, b', [1, -2]),(2,'it''s (fine)',[3.5]);")
	require.NoError(t, err)
	ins := stmt.(*InsertStmt)
	require.Len(t, ins.Rows, 2)
	assert.Equal(t, "'a, b'", ins.Rows[0][1].Raw)
	assert.Equal(t, "'it''s (fine)'", ins.Rows[1][1].Raw)
}

func TestParseInsert_ArityMismatch(t *testing.T) {
	cases := []string{
		"INSERT INTO t (id, name) VALUES (1, 'a', 2)",
		"INSERT INTO t (id) VALUES (1), (2,3)",
		"INSERT INTO t (id, name) VALUES (1)",
	}
	for _, q := range cases {
		_, err := Validate(q)
		assert.ErrorIs(t, err, ErrArityMismatch, "input %q", q)
	}

	_, err := Validate("INSERT INTO t (id) VALUES (1), (2,3)")
	assert.EqualError(t, err, "arity mismatch: group 2 has 2 values, expected 1 value")
}

func TestParseInsert_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"empty array":       "INSERT INTO t (id, vec) VALUES (1, [])",
		"nested array":      "INSERT INTO t (id, vec) VALUES (1, [[1], [2]])",
		"string in array":   "INSERT INTO t (id, vec) VALUES (1, ['a'])",
		"bare word":         "INSERT INTO t (id) VALUES (abc)",
		"boolean":           "INSERT INTO t (id) VALUES (true)",
		"empty value":       "INSERT INTO t (id, x) VALUES (1, )",
		"double quoted":     `INSERT INTO t (id) VALUES ("a")`,
		"exponent":          "INSERT INTO t (id) VALUES (1e3)",
		"trailing dot":      "INSERT INTO t (id) VALUES (1.)",
		"expression":        "INSERT INTO t (id) VALUES (1 + 2)",
		"parenthesized val": "INSERT INTO t (id) VALUES ((1))",
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(q)
			assert.ErrorIs(t, err, ErrInvalidValueToken)
		})
	}
}

func TestParseInsert_MalformedShape(t *testing.T) {
	cases := map[string]string{
		"no column list":    "INSERT INTO t VALUES (1)",
		"bad table":         "INSERT INTO my-table (id) VALUES (1)",
		"empty column list": "INSERT INTO t () VALUES (1)",
		"bad column":        "INSERT INTO t (id, na me) VALUES (1, 2)",
		"missing VALUES":    "INSERT INTO t (id) (1)",
		"no groups":         "INSERT INTO t (id) VALUES",
		"trailing comma":    "INSERT INTO t (id) VALUES (1),",
		"missing comma":     "INSERT INTO t (id) VALUES (1) (2)",
		"trailing text":     "INSERT INTO t (id) VALUES (1) RETURNING id",
		"VALUES glued":      "INSERT INTO t (id) VALUESX (1)",
		"stray quote":       "INSERT INTO t (id) VALUES ('a'b')",
		"unterminated str":  "INSERT INTO t (id) VALUES ('abc)",
		"unclosed bracket":  "INSERT INTO t (id) VALUES ([1, 2)",
		"duplicate column":  "INSERT INTO t (id, name, ID) VALUES (1, 'a', 2)",
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(q)
			assert.ErrorIs(t, err, ErrMalformedInsertShape)
		})
	}
}

func TestParseCreateTable_Basic(t *testing.T) {
	stmt, err := Validate("CREATE TABLE t (id INT, tags LIST[STRING])")
	require.NoError(t, err)

	ct, ok := stmt.(*CreateTableStmt)
	require.True(t, ok, "expected *CreateTableStmt, got %T", stmt)
	assert.Equal(t, "t", ct.TableName)
	assert.Equal(t, []Column{
		{Name: "id", Type: ColumnType{Elem: TypeInt}},
		{Name: "tags", Type: ColumnType{Elem: TypeString, List: true}},
	}, ct.Columns)
	assert.Equal(t, "LIST[STRING]", ct.Columns[1].Type.String())
}

func TestParseCreateTable_CaseAndSpaces(t *testing.T) {
	stmt, err := Validate("  create   table   Accounts  (  balance   float ,\n owner  string, emb list[ float ] );  ")
	require.NoError(t, err)

	ct := stmt.(*CreateTableStmt)
	assert.Equal(t, "Accounts", ct.TableName)
	require.Len(t, ct.Columns, 3)
	assert.Equal(t, ColumnType{Elem: TypeFloat}, ct.Columns[0].Type)
	assert.Equal(t, ColumnType{Elem: TypeString}, ct.Columns[1].Type)
	assert.Equal(t, ColumnType{Elem: TypeFloat, List: true}, ct.Columns[2].Type)
}

func TestParseCreateTable_InvalidColumnType(t *testing.T) {
	cases := []string{
		"CREATE TABLE t (id INT, tags LIST[LIST[INT]])",
		"CREATE TABLE t (id INTEGER)",
		"CREATE TABLE t (name VARCHAR(255))",
		"CREATE TABLE t (tags LIST[BOOL])",
		"CREATE TABLE t (tags LIST[])",
		"CREATE TABLE t (tags LIST)",
	}
	for _, q := range cases {
		_, err := Validate(q)
		assert.ErrorIs(t, err, ErrInvalidColumnType, "input %q", q)
	}
}

func TestParseCreateTable_MalformedShape(t *testing.T) {
	cases := map[string]string{
		"no columns":       "CREATE TABLE t ()",
		"no parens":        "CREATE TABLE t",
		"missing type":     "CREATE TABLE t (id)",
		"extra tokens":     "CREATE TABLE t (id INT PRIMARY KEY)",
		"trailing comma":   "CREATE TABLE t (id INT,)",
		"bad table":        "CREATE TABLE t.x (id INT)",
		"missing table":    "CREATE TABLE (id INT)",
		"text after list":  "CREATE TABLE t (id INT) WITH OIDS",
		"bad column name":  "CREATE TABLE t (i-d INT)",
		"keyword only":     "CREATE TABLE",
		"duplicate column": "CREATE TABLE t (id INT, Id STRING)",
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(q)
			assert.ErrorIs(t, err, ErrMalformedCreateTableShape)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "", KindOf(nil))
	assert.Equal(t, "Unknown", KindOf(errors.New("boom")))

	_, err := Validate("CREATE TABLE t (id INT, tags LIST[LIST[INT]])")
	assert.Equal(t, "InvalidColumnType", KindOf(err))
}

func TestValidate_NeverPanics(t *testing.T) {
	inputs := []string{
		"(", ")", "'", "[", "]", "\\", "''", "()", "[]",
		"INSERT INTO", "INSERT INTO (", "INSERT INTO t (", "INSERT INTO t (a) VALUES ('",
		"INSERT INTO t (a) VALUES (['\\", "CREATE TABLE t (a LIST[", "SELECT * FROM t LIMIT",
		"\x00\xff", "INSERT INTO t (a) VALUES (\xff)",
	}
	for _, q := range inputs {
		assert.NotPanics(t, func() { _, _ = Validate(q) }, "input %q", q)
		assert.False(t, IsValid(q), "input %q", q)
	}
}

func TestValidate_DuplicateColumns(t *testing.T) {
	_, err := Validate("CREATE TABLE t (vec LIST[FLOAT], VEC LIST[INT])")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "VEC"`)

	_, err = Validate("CREATE TABLE t (a INT, a INT)")
	assert.ErrorIs(t, err, ErrMalformedCreateTableShape)

	_, err = Validate("INSERT INTO t (a, b, a) VALUES (1, 2, 3)")
	assert.ErrorIs(t, err, ErrMalformedInsertShape)

	// Repeating a field in a projection is allowed.
	_, err = Validate("SELECT id, id FROM t")
	assert.NoError(t, err)
}
