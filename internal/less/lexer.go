package less

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokAtKeyword
	tokString
	tokHash
	tokNumber
	tokURI
	tokSpace
	tokFunction
	tokChar
	tokInterp // @{name}, Value holds the bare name
	tokRaw    // literal text produced by substitution
	tokOther
)

type token struct {
	kind  tokenKind
	value string
	line  int
	col   int
}

func (t token) is(kind tokenKind, value string) bool {
	return t.kind == kind && t.value == value
}

func (t token) isChar(c string) bool {
	return t.kind == tokChar && t.value == c
}

// tokenize splits src into tokens. Block comments are dropped, line
// comments are stripped before scanning since CSS has none.
func tokenize(file, src string) ([]token, error) {
	s := scanner.New(stripLineComments(src))
	var toks []token
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return joinInterpolations(toks), nil
		case scanner.TokenError:
			return nil, newError(ErrParse, pos{file, t.Line, t.Column}, "unrecognised input %q", t.Value)
		case scanner.TokenComment, scanner.TokenBOM, scanner.TokenCDO, scanner.TokenCDC:
			continue
		}
		toks = append(toks, token{kind: mapKind(t), value: t.Value, line: t.Line, col: t.Column})
	}
}

func mapKind(tok *scanner.Token) tokenKind {
	switch tok.Type {
	case scanner.TokenIdent:
		return tokIdent
	case scanner.TokenAtKeyword:
		return tokAtKeyword
	case scanner.TokenString:
		return tokString
	case scanner.TokenHash:
		return tokHash
	case scanner.TokenNumber, scanner.TokenPercentage, scanner.TokenDimension:
		return tokNumber
	case scanner.TokenURI:
		return tokURI
	case scanner.TokenS:
		return tokSpace
	case scanner.TokenFunction:
		return tokFunction
	case scanner.TokenChar:
		return tokChar
	default:
		return tokOther
	}
}

// joinInterpolations folds the scanner's '@' '{' ident '}' sequence into one token.
func joinInterpolations(toks []token) []token {
	out := toks[:0:0]
	for i := 0; i < len(toks); i++ {
		if i+3 < len(toks) && toks[i].isChar("@") && toks[i+1].isChar("{") &&
			toks[i+2].kind == tokIdent && toks[i+3].isChar("}") {
			out = append(out, token{kind: tokInterp, value: toks[i+2].value, line: toks[i].line, col: toks[i].col})
			i += 3
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// stripLineComments removes "// ..." comments outside strings, block
// comments and url() bodies. Newlines are kept so line numbers survive.
func stripLineComments(src string) string {
	if !strings.Contains(src, "//") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	var quote byte
	inBlock, inURL := false, false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inBlock:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				b.WriteString("*/")
				i++
				continue
			}
		case quote != 0:
			if c == '\\' && i+1 < len(src) {
				b.WriteByte(c)
				i++
				c = src[i]
			} else if c == quote {
				quote = 0
			}
		case inURL:
			if c == ')' {
				inURL = false
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			b.WriteString("/*")
			i++
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		case c == '(' && i >= 3 && strings.EqualFold(src[i-3:i], "url"):
			inURL = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// trimSpace drops leading and trailing whitespace tokens.
func trimSpace(toks []token) []token {
	for len(toks) > 0 && toks[0].kind == tokSpace {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].kind == tokSpace {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// unquote strips matching quotes from a string token value.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
