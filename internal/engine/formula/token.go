package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokVar
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	num  float64
	name string
	pos  int
}

// tokenize splits a formula template into tokens. Placeholders of the form
// {identifier} become variable tokens; "**" is accepted as an alias for "^".
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '{':
			end := strings.IndexByte(src[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated placeholder at position %d", i)
			}
			name := strings.TrimSpace(src[i+1 : i+end])
			if name == "" || !isIdentifier(name) {
				return nil, fmt.Errorf("invalid placeholder %q at position %d", src[i:i+end+1], i)
			}
			toks = append(toks, token{kind: tokVar, name: name, pos: i})
			i += end + 1
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			num, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", src[start:i], start)
			}
			toks = append(toks, token{kind: tokNumber, num: num, pos: start})
		case ch == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case ch == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case ch == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				toks = append(toks, token{kind: tokCaret, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, pos: i})
				i++
			}
		case ch == '/':
			toks = append(toks, token{kind: tokSlash, pos: i})
			i++
		case ch == '^':
			toks = append(toks, token{kind: tokCaret, pos: i})
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isIdentifier(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
