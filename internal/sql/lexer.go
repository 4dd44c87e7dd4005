package sql

import "strings"

type tokenKind int

const (
	tokWord  tokenKind = iota // [A-Za-z0-9_]+
	tokStar                   // *
	tokComma                  // ,
	tokOther                  // any other single byte
)

type token struct {
	kind tokenKind
	text string
}

// lex splits a normalized statement into word and punctuation tokens.
// Spaces separate tokens and are dropped.
func lex(s string) []token {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ':
			i++
		case isIdentChar(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: s[i:j]})
			i = j
		case c == '*':
			toks = append(toks, token{kind: tokStar, text: "*"})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ","})
			i++
		default:
			toks = append(toks, token{kind: tokOther, text: s[i : i+1]})
			i++
		}
	}
	return toks
}

// tokenStream is a cursor over lexed tokens used by the recursive-descent
// parsers.
type tokenStream struct {
	toks []token
	pos  int
}

func (ts *tokenStream) peek() (token, bool) {
	if ts.pos >= len(ts.toks) {
		return token{}, false
	}
	return ts.toks[ts.pos], true
}

func (ts *tokenStream) next() (token, bool) {
	t, ok := ts.peek()
	if ok {
		ts.pos++
	}
	return t, ok
}

// keyword consumes the next token if it is the given word, case-insensitive.
func (ts *tokenStream) keyword(kw string) bool {
	t, ok := ts.peek()
	if !ok || t.kind != tokWord || !strings.EqualFold(t.text, kw) {
		return false
	}
	ts.pos++
	return true
}

// word consumes the next token if it is a word and returns its text.
func (ts *tokenStream) word() (string, bool) {
	t, ok := ts.peek()
	if !ok || t.kind != tokWord {
		return "", false
	}
	ts.pos++
	return t.text, true
}
