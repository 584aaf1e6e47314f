package less

import "strings"

// LocalizeClasses scopes the class selectors of src under prefix, the way a
// CSS-modules loader would. Classes wrapped in :global(...) are unwrapped and
// kept as is, as is everything after a bare :global. Mixin definitions and
// mixin calls keep their names. The result is printed back without comments.
func LocalizeClasses(file, src, prefix string) (string, error) {
	stmts, err := parse(file, src)
	if err != nil {
		return "", err
	}
	localize(stmts, prefix)
	return printLess(stmts), nil
}

func localize(stmts []statement, prefix string) {
	for _, st := range stmts {
		switch st := st.(type) {
		case *ruleset:
			st.selector = localizeSelector(st.selector, prefix)
			localize(st.body, prefix)
		case *atRule:
			if conditionalAtRules[st.name] {
				localize(st.body, prefix)
			}
		}
	}
}

func localizeSelector(toks []token, prefix string) []token {
	out := make([]token, 0, len(toks))
	global := false
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.isChar(","):
			global = false
		case t.isChar(":") && i+1 < len(toks) && toks[i+1].kind == tokFunction && strings.EqualFold(toks[i+1].value, "global("):
			end := closingParen(toks, i+2)
			out = append(out, toks[i+2:end]...)
			i = end
			continue
		case t.isChar(":") && i+1 < len(toks) && toks[i+1].is(tokIdent, "global"):
			global = true
			i++
			// drop the whitespace following the bare :global
			for i+1 < len(toks) && toks[i+1].kind == tokSpace {
				i++
			}
			continue
		case !global && t.isChar(".") && i+1 < len(toks) && (toks[i+1].kind == tokIdent || toks[i+1].kind == tokInterp):
			next := toks[i+1]
			out = append(out, t)
			if next.kind == tokInterp {
				out = append(out, token{kind: tokRaw, value: prefix, line: next.line, col: next.col}, next)
			} else {
				out = append(out, token{kind: tokRaw, value: prefix + next.value, line: next.line, col: next.col})
			}
			i++
			continue
		}
		out = append(out, t)
	}
	return out
}

// closingParen returns the index of the ')' closing the function opened just before from.
func closingParen(toks []token, from int) int {
	depth := 1
	for i := from; i < len(toks); i++ {
		switch {
		case toks[i].kind == tokFunction || toks[i].isChar("("):
			depth++
		case toks[i].isChar(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks)
}
