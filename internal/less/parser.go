package less

import "strings"

type parser struct {
	file string
	toks []token
	i    int
}

// parse turns LESS source into a statement tree. Imports are not followed.
func parse(file, src string) ([]statement, error) {
	toks, err := tokenize(file, src)
	if err != nil {
		return nil, err
	}
	p := &parser{file: file, toks: toks}
	return p.block(false)
}

func (p *parser) at(t token) pos {
	return pos{p.file, t.line, t.col}
}

func (p *parser) eof() pos {
	if len(p.toks) == 0 {
		return pos{p.file, 1, 1}
	}
	last := p.toks[len(p.toks)-1]
	return p.at(last)
}

// block parses statements until EOF, or until the closing brace when nested.
func (p *parser) block(nested bool) ([]statement, error) {
	var out []statement
	for {
		for p.i < len(p.toks) && (p.toks[p.i].kind == tokSpace || p.toks[p.i].isChar(";")) {
			p.i++
		}
		if p.i >= len(p.toks) {
			if nested {
				return nil, newError(ErrParse, p.eof(), "missing closing `}`")
			}
			return out, nil
		}
		if p.toks[p.i].isChar("}") {
			if !nested {
				return nil, newError(ErrParse, p.at(p.toks[p.i]), "unexpected `}`")
			}
			p.i++
			return out, nil
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
}

// statement collects tokens up to a top-level ';', '{' or '}' and classifies them.
func (p *parser) statement() (statement, error) {
	start := p.toks[p.i]
	depth := 0
	var buf []token
	for p.i < len(p.toks) {
		t := p.toks[p.i]
		switch {
		case t.kind == tokFunction || t.isChar("(") || t.isChar("["):
			depth++
		case t.isChar(")") || t.isChar("]"):
			depth--
		case depth == 0 && t.isChar(";"):
			p.i++
			return p.simple(start, trimSpace(buf))
		case depth == 0 && t.isChar("}"):
			// last declaration of a block may omit its semicolon
			return p.simple(start, trimSpace(buf))
		case depth == 0 && t.isChar("{"):
			p.i++
			return p.blockStatement(start, trimSpace(buf))
		}
		buf = append(buf, t)
		p.i++
	}
	return p.simple(start, trimSpace(buf))
}

func (p *parser) blockStatement(start token, prelude []token) (statement, error) {
	if len(prelude) == 0 {
		return nil, newError(ErrParse, p.at(start), "block without selector")
	}
	body, err := p.block(true)
	if err != nil {
		return nil, err
	}
	at := p.at(start)
	if prelude[0].kind == tokAtKeyword {
		return &atRule{at: at, name: prelude[0].value[1:], prelude: trimSpace(prelude[1:]), body: body, block: true}, nil
	}
	if name, params, ok := mixinSignature(prelude); ok {
		if params {
			return nil, newError(ErrParse, at, "mixin %s: parameters are not supported by the builtin compiler", name)
		}
		return &mixinDef{at: at, name: name, body: body}, nil
	}
	return &ruleset{at: at, selector: prelude, body: body}, nil
}

func (p *parser) simple(start token, toks []token) (statement, error) {
	at := p.at(start)
	if len(toks) == 0 {
		return nil, newError(ErrParse, at, "empty statement")
	}
	if toks[0].kind == tokAtKeyword {
		rest := trimSpace(toks[1:])
		name := toks[0].value[1:]
		if len(rest) > 0 && rest[0].isChar(":") {
			return &varDecl{at: at, name: name, value: trimSpace(rest[1:])}, nil
		}
		if name == "import" {
			return p.importRule(at, toks, rest)
		}
		return &atRule{at: at, name: name, prelude: rest}, nil
	}
	if name, important, ok := mixinCallSignature(toks); ok {
		return &mixinCall{at: at, name: name, important: important}, nil
	}
	for i, t := range toks {
		if t.isChar(":") {
			prop := trimSpace(toks[:i])
			if len(prop) == 0 {
				break
			}
			return &decl{at: at, property: prop, value: trimSpace(toks[i+1:])}, nil
		}
	}
	return nil, newError(ErrParse, at, "unrecognised input %q", render(toks))
}

func (p *parser) importRule(at pos, raw, rest []token) (statement, error) {
	imp := &importRule{at: at, raw: raw}
	if len(rest) > 0 && rest[0].isChar("(") {
		end := -1
		for i, t := range rest {
			if t.isChar(")") {
				end = i
				break
			}
			if t.kind == tokIdent {
				imp.options = append(imp.options, t.value)
			}
		}
		if end < 0 {
			return nil, newError(ErrParse, at, "unterminated import options")
		}
		rest = trimSpace(rest[end+1:])
	}
	if len(rest) == 0 {
		return nil, newError(ErrParse, at, "import without path")
	}
	imp.path = rest
	return imp, nil
}

// mixinSignature matches ".name()" and reports whether parameters were given.
func mixinSignature(toks []token) (name string, params bool, ok bool) {
	if len(toks) < 3 || !toks[0].isChar(".") || toks[1].kind != tokFunction {
		return "", false, false
	}
	if !toks[len(toks)-1].isChar(")") {
		return "", false, false
	}
	name = "." + strings.TrimSuffix(toks[1].value, "(")
	inner := trimSpace(toks[2 : len(toks)-1])
	return name, len(inner) > 0, true
}

// mixinCallSignature matches ".name();", ".name;" and an optional !important.
func mixinCallSignature(toks []token) (name string, important bool, ok bool) {
	if len(toks) < 2 || !toks[0].isChar(".") {
		return "", false, false
	}
	rest := toks[1:]
	switch {
	case rest[0].kind == tokIdent:
		name = "." + rest[0].value
		rest = trimSpace(rest[1:])
	case rest[0].kind == tokFunction && len(rest) >= 2 && rest[1].isChar(")"):
		name = "." + strings.TrimSuffix(rest[0].value, "(")
		rest = trimSpace(rest[2:])
	default:
		return "", false, false
	}
	if len(rest) == 0 {
		return name, false, true
	}
	if len(rest) == 2 && rest[0].isChar("!") && rest[1].is(tokIdent, "important") {
		return name, true, true
	}
	return "", false, false
}
