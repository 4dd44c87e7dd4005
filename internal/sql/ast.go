package sql

// Statement is the common interface for all statements accepted by the dialect.
type Statement interface {
	stmtNode()

	// Command returns the leading keyword in canonical upper case.
	Command() string
}

// SelectStmt represents a validated SELECT statement.
// Columns is nil when the field list is "*".
type SelectStmt struct {
	TableName string
	Columns   []string
	HasLimit  bool
	Limit     int64
}

// InsertStmt represents a validated, possibly multi-row, INSERT INTO statement.
type InsertStmt struct {
	TableName string
	Columns   []string
	Rows      []Row
}

// CreateTableStmt represents a validated CREATE TABLE statement.
type CreateTableStmt struct {
	TableName string
	Columns   []Column
}

func (*SelectStmt) stmtNode()      {}
func (*InsertStmt) stmtNode()      {}
func (*CreateTableStmt) stmtNode() {}

func (*SelectStmt) Command() string      { return cmdSelect }
func (*InsertStmt) Command() string      { return cmdInsertInto }
func (*CreateTableStmt) Command() string { return cmdCreateTable }
