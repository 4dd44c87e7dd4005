package sql

import "strings"

func isIdentChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// isIdentifier reports whether s matches [A-Za-z0-9_]+.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isNumber reports whether s matches -?[0-9]+(\.[0-9]+)?.
func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) {
		return false
	}
	return !hasDot || isDigits(frac)
}

// isQuotedString reports whether s is one single-quoted literal. Inside the
// quotes a quote must be escaped, either as \' or as ''.
func isQuotedString(s string) bool {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return false
	}
	inner := s[1 : len(s)-1]
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '\\':
			i++
		case '\'':
			if i+1 >= len(inner) || inner[i+1] != '\'' {
				return false
			}
			i++
		}
	}
	return true
}

// classifyValue types a single INSERT value token.
func classifyValue(tok string) (Value, error) {
	switch {
	case tok == "":
		return Value{}, failf(ErrInvalidValueToken, "empty value")
	case isNumber(tok):
		return Value{Kind: ValueNumber, Raw: tok}, nil
	case tok[0] == '\'':
		if !isQuotedString(tok) {
			return Value{}, failf(ErrInvalidValueToken, "malformed string literal %s", tok)
		}
		return Value{Kind: ValueQuotedString, Raw: tok}, nil
	case tok[0] == '[':
		elems, err := parseNumericArray(tok)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueNumericArray, Raw: tok, Elems: elems}, nil
	default:
		return Value{}, failf(ErrInvalidValueToken, "%q is not a number, string or numeric array", tok)
	}
}

// parseNumericArray decodes "[1, 2.5, -3]" into its element strings.
// The array must be non-empty and hold only numbers.
func parseNumericArray(tok string) ([]string, error) {
	if len(tok) < 2 || tok[len(tok)-1] != ']' {
		return nil, failf(ErrInvalidValueToken, "malformed array %s", tok)
	}
	inner := strings.TrimSpace(tok[1 : len(tok)-1])
	if inner == "" {
		return nil, failf(ErrInvalidValueToken, "empty array")
	}
	parts := strings.Split(inner, ",")
	elems := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !isNumber(p) {
			return nil, failf(ErrInvalidValueToken, "array element %q in %s is not numeric", p, tok)
		}
		elems = append(elems, p)
	}
	return elems, nil
}

func scalarType(upper string) (ScalarType, bool) {
	switch upper {
	case "INT":
		return TypeInt, true
	case "STRING":
		return TypeString, true
	case "FLOAT":
		return TypeFloat, true
	}
	return 0, false
}

// parseColumnType parses INT, STRING, FLOAT or LIST[<scalar>], case-insensitive.
// Whitespace is allowed inside the brackets of a LIST.
func parseColumnType(s string) (ColumnType, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if st, ok := scalarType(u); ok {
		return ColumnType{Elem: st}, nil
	}
	if strings.HasPrefix(u, "LIST[") && strings.HasSuffix(u, "]") {
		inner := strings.TrimSpace(u[len("LIST[") : len(u)-1])
		if st, ok := scalarType(inner); ok {
			return ColumnType{Elem: st, List: true}, nil
		}
		if strings.HasPrefix(inner, "LIST") {
			return ColumnType{}, failf(ErrInvalidColumnType, "nested list type %s", s)
		}
	}
	return ColumnType{}, failf(ErrInvalidColumnType, "unknown column type %q", s)
}

// stripSemicolon removes one optional trailing ';' and the space before it.
func stripSemicolon(s string) string {
	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}

// splitIdentifiers splits a comma-separated identifier list, reporting the
// first entry that is not an identifier.
func splitIdentifiers(s string) ([]string, string, bool) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !isIdentifier(p) {
			return nil, p, false
		}
		out = append(out, p)
	}
	return out, "", true
}

// firstDuplicate returns the first name that repeats an earlier one,
// compared case-insensitively.
func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			return n, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}
