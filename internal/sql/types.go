package sql

import "fmt"

// ScalarType is one of the three scalar column types of the dialect.
type ScalarType int

const (
	TypeInt ScalarType = iota
	TypeString
	TypeFloat
)

func (t ScalarType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeString:
		return "STRING"
	case TypeFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("ScalarType(%d)", int(t))
	}
}

// ColumnType is either a scalar type or LIST[scalar].
// Only one level of nesting exists; List marks the array form.
type ColumnType struct {
	Elem ScalarType
	List bool
}

func (c ColumnType) String() string {
	if c.List {
		return "LIST[" + c.Elem.String() + "]"
	}
	return c.Elem.String()
}

// Column describes one column definition of a CREATE TABLE statement.
type Column struct {
	Name string
	Type ColumnType
}

// ValueKind classifies a literal token of an INSERT value group.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueQuotedString
	ValueNumericArray
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "Number"
	case ValueQuotedString:
		return "QuotedString"
	case ValueNumericArray:
		return "NumericArray"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a single classified literal.
// Raw holds the token exactly as written (quotes included for strings).
// Elems is only set for ValueNumericArray and holds the decimal strings.
type Value struct {
	Kind  ValueKind
	Raw   string
	Elems []string
}

// Row is one value group of an INSERT: one Value per target column.
type Row []Value
