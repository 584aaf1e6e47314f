package less

import "strings"

type outItem interface {
	empty() bool
}

type ruleOut struct {
	selectors []string
	decls     []string
}

type atOut struct {
	name    string
	prelude string
	decls   []string
	items   []outItem
}

type rawOut string

func (r *ruleOut) empty() bool { return len(r.decls) == 0 || len(r.selectors) == 0 }
func (r rawOut) empty() bool   { return r == "" }

func (a *atOut) empty() bool {
	if len(a.decls) > 0 {
		return false
	}
	for _, it := range a.items {
		if !it.empty() {
			return false
		}
	}
	return true
}

// printCSS renders evaluated output the way lessc formats it.
func printCSS(hoisted []string, items []outItem) string {
	var b strings.Builder
	for _, h := range hoisted {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	writeItems(&b, items, "")
	return b.String()
}

func writeItems(b *strings.Builder, items []outItem, indent string) {
	for _, it := range items {
		if it.empty() {
			continue
		}
		switch it := it.(type) {
		case *ruleOut:
			b.WriteString(indent)
			b.WriteString(strings.Join(it.selectors, ",\n"+indent))
			b.WriteString(" {\n")
			writeDecls(b, it.decls, indent+"  ")
			b.WriteString(indent + "}\n")
		case *atOut:
			b.WriteString(indent + "@" + it.name)
			if it.prelude != "" {
				b.WriteString(" " + it.prelude)
			}
			b.WriteString(" {\n")
			writeDecls(b, it.decls, indent+"  ")
			writeItems(b, it.items, indent+"  ")
			b.WriteString(indent + "}\n")
		case rawOut:
			b.WriteString(indent + string(it) + "\n")
		}
	}
}

func writeDecls(b *strings.Builder, decls []string, indent string) {
	for _, d := range decls {
		b.WriteString(indent + d + ";\n")
	}
}

// render prints tokens back as source text with whitespace collapsed.
func render(toks []token) string {
	var b strings.Builder
	space := false
	for _, t := range toks {
		if t.kind == tokSpace {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		if t.kind == tokInterp {
			b.WriteString("@{" + t.value + "}")
			continue
		}
		b.WriteString(t.value)
	}
	return b.String()
}

// printLess renders a statement tree back to LESS source.
func printLess(stmts []statement) string {
	var b strings.Builder
	writeLess(&b, stmts, "")
	return b.String()
}

func writeLess(b *strings.Builder, stmts []statement, indent string) {
	for _, st := range stmts {
		switch st := st.(type) {
		case *varDecl:
			b.WriteString(indent + "@" + st.name + ": " + render(st.value) + ";\n")
		case *decl:
			b.WriteString(indent + render(st.property) + ": " + render(st.value) + ";\n")
		case *ruleset:
			b.WriteString(indent + render(st.selector) + " {\n")
			writeLess(b, st.body, indent+"  ")
			b.WriteString(indent + "}\n")
		case *mixinDef:
			b.WriteString(indent + st.name + "() {\n")
			writeLess(b, st.body, indent+"  ")
			b.WriteString(indent + "}\n")
		case *mixinCall:
			b.WriteString(indent + st.name + "()")
			if st.important {
				b.WriteString(" !important")
			}
			b.WriteString(";\n")
		case *importRule:
			b.WriteString(indent + render(st.raw) + ";\n")
		case *atRule:
			b.WriteString(indent + "@" + st.name)
			if len(st.prelude) > 0 {
				b.WriteString(" " + render(st.prelude))
			}
			if !st.block {
				b.WriteString(";\n")
				continue
			}
			b.WriteString(" {\n")
			writeLess(b, st.body, indent+"  ")
			b.WriteString(indent + "}\n")
		}
	}
}
