package gate

import (
	"hash/fnv"

	"sqlgate/internal/sql"
)

// Verdict is the outcome of checking one statement.
type Verdict struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Command    string `json:"command,omitempty"`
	Table      string `json:"table,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Check validates a statement. Verdicts are memoized by the normalized text,
// so statements differing only in whitespace share a cache entry.
func (g *Gate) Check(statement string) Verdict {
	norm := sql.Normalize(statement)
	key := fingerprint(norm)

	if v, ok := g.verdicts.Get(key); ok && v.Normalized == norm {
		return v
	}

	v := verdictFor(norm)
	g.verdicts.Add(key, v)
	return v
}

func verdictFor(norm string) Verdict {
	stmt, err := sql.Validate(norm)
	if err != nil {
		return Verdict{
			Normalized: norm,
			Reason:     sql.KindOf(err),
			Message:    err.Error(),
		}
	}
	return Verdict{
		Valid:      true,
		Normalized: norm,
		Command:    stmt.Command(),
		Table:      tableOf(stmt),
	}
}

func tableOf(stmt sql.Statement) string {
	switch s := stmt.(type) {
	case *sql.SelectStmt:
		return s.TableName
	case *sql.InsertStmt:
		return s.TableName
	case *sql.CreateTableStmt:
		return s.TableName
	default:
		return ""
	}
}

func fingerprint(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
