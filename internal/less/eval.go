package less

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

const maxMixinDepth = 64

type boundVar struct {
	decl  *varDecl
	scope *scope
	value string
	state int // 0 pending, 1 evaluating, 2 done
}

type scope struct {
	parent *scope
	vars   map[string]*boundVar
	mixins map[string]*mixinDef
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: map[string]*boundVar{}, mixins: map[string]*mixinDef{}}
}

func (s *scope) lookupVar(name string) *boundVar {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v
		}
	}
	return nil
}

func (s *scope) lookupMixin(name string) *mixinDef {
	for sc := s; sc != nil; sc = sc.parent {
		if m, ok := sc.mixins[name]; ok {
			return m
		}
	}
	return nil
}

// entry is a statement after import expansion. ref marks statements that
// came from a (reference) import: they define variables and mixins but emit nothing.
type entry struct {
	st  statement
	ref bool
}

// frame is the evaluation context of one block.
type frame struct {
	scope     *scope
	selectors []string
	sink      *[]outItem
	decls     *[]string
}

type evaluator struct {
	includePaths []string
	imported     map[string]bool
	hoisted      []string
	depth        int
}

func newEvaluator(includePaths []string) *evaluator {
	return &evaluator{includePaths: includePaths, imported: map[string]bool{}}
}

// expand inlines imports so a block's scope sees every imported declaration.
func (e *evaluator) expand(stmts []statement, ref bool) ([]entry, error) {
	out := make([]entry, 0, len(stmts))
	for _, st := range stmts {
		imp, ok := st.(*importRule)
		if !ok {
			out = append(out, entry{st: st, ref: ref})
			continue
		}
		path, css, err := e.resolveImport(imp)
		if err != nil {
			return nil, err
		}
		if css {
			if !ref {
				e.hoisted = append(e.hoisted, render(imp.raw)+";")
			}
			continue
		}
		if path == "" || (e.imported[path] && !slices.Contains(imp.options, "multiple")) {
			continue
		}
		e.imported[path] = true
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, newError(ErrFile, imp.at, "'%s' could not be read: %v", path, err)
		}
		child, err := parse(path, string(data))
		if err != nil {
			return nil, err
		}
		nested, err := e.expand(child, ref || slices.Contains(imp.options, "reference"))
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// resolveImport returns the file an import points to, or css=true when the
// import must be left to the browser. An empty path means "optional and missing".
func (e *evaluator) resolveImport(imp *importRule) (string, bool, error) {
	first := imp.path[0]
	var target string
	switch first.kind {
	case tokString:
		target = unquote(first.value)
	case tokURI:
		target = unquote(strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(first.value, "url("), ")")))
	default:
		return "", false, newError(ErrParse, imp.at, "import path must be a string, got %q", render(imp.path))
	}
	if slices.Contains(imp.options, "css") || first.kind == tokURI || filepath.Ext(target) == ".css" ||
		strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "//") {
		return "", true, nil
	}

	var candidates []string
	switch {
	case strings.HasPrefix(target, "~"):
		for _, inc := range e.includePaths {
			candidates = append(candidates, filepath.Join(inc, target[1:]))
		}
	case filepath.IsAbs(target):
		candidates = append(candidates, target)
	default:
		candidates = append(candidates, filepath.Join(filepath.Dir(imp.at.file), target))
		for _, inc := range e.includePaths {
			candidates = append(candidates, filepath.Join(inc, target))
		}
	}
	for _, c := range candidates {
		tries := []string{c}
		if filepath.Ext(c) == "" {
			tries = []string{c + ".less", c}
		}
		for _, t := range tries {
			info, err := os.Stat(t)
			if err == nil && !info.IsDir() {
				abs, absErr := filepath.Abs(t)
				if absErr != nil {
					return t, false, nil
				}
				return abs, false, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", false, newError(ErrFile, imp.at, "'%s' could not be read: %v", t, err)
			}
		}
	}
	if slices.Contains(imp.options, "optional") {
		return "", false, nil
	}
	return "", false, newError(ErrFile, imp.at, "'%s' wasn't found", target)
}

// block binds the block's variables and mixins, then evaluates it in order.
func (e *evaluator) block(entries []entry, f frame) error {
	for _, en := range entries {
		switch st := en.st.(type) {
		case *varDecl:
			f.scope.vars[st.name] = &boundVar{decl: st, scope: f.scope}
		case *mixinDef:
			f.scope.mixins[st.name] = st
		}
	}
	var discard []outItem
	for _, en := range entries {
		ef := f
		if en.ref {
			ef.sink = &discard
		}
		if err := e.statement(en.st, ef); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) statement(st statement, f frame) error {
	switch st := st.(type) {
	case *varDecl, *mixinDef:
		return nil
	case *decl:
		if f.decls == nil {
			return newError(ErrSyntax, st.at, "properties must be inside selector blocks")
		}
		prop, err := e.text(st.property, f.scope, st.at.file)
		if err != nil {
			return err
		}
		val, err := e.value(st.value, f.scope, st.at.file)
		if err != nil {
			return err
		}
		*f.decls = append(*f.decls, prop+": "+val)
		return nil
	case *ruleset:
		sels, err := e.selectors(st.selector, f.scope, st.at.file)
		if err != nil {
			return err
		}
		r := &ruleOut{selectors: combine(f.selectors, sels)}
		*f.sink = append(*f.sink, r)
		return e.body(st.body, frame{scope: newScope(f.scope), selectors: r.selectors, sink: f.sink, decls: &r.decls})
	case *atRule:
		return e.atRule(st, f)
	case *mixinCall:
		return e.mixinCall(st, f)
	case *importRule:
		// expanded before evaluation
		return nil
	}
	return nil
}

func (e *evaluator) body(stmts []statement, f frame) error {
	entries, err := e.expand(stmts, false)
	if err != nil {
		return err
	}
	return e.block(entries, f)
}

func (e *evaluator) atRule(st *atRule, f frame) error {
	prelude, err := e.value(st.prelude, f.scope, st.at.file)
	if err != nil {
		return err
	}
	if !st.block {
		*f.sink = append(*f.sink, rawOut(strings.TrimSpace("@"+st.name+" "+prelude)+";"))
		return nil
	}
	at := &atOut{name: st.name, prelude: prelude}
	*f.sink = append(*f.sink, at)
	inner := frame{scope: newScope(f.scope), sink: &at.items}
	if conditionalAtRules[st.name] {
		inner.selectors = f.selectors
		if f.selectors != nil {
			r := &ruleOut{selectors: f.selectors}
			at.items = append(at.items, r)
			inner.decls = &r.decls
		}
	} else {
		inner.decls = &at.decls
	}
	return e.body(st.body, inner)
}

func (e *evaluator) mixinCall(st *mixinCall, f frame) error {
	def := f.scope.lookupMixin(st.name)
	if def == nil {
		return newError(ErrName, st.at, "%s is undefined", st.name)
	}
	if e.depth >= maxMixinDepth {
		return newError(ErrRecursion, st.at, "mixin %s nested too deeply", st.name)
	}
	e.depth++
	defer func() { e.depth-- }()

	before := 0
	if f.decls != nil {
		before = len(*f.decls)
	}
	if err := e.body(def.body, frame{scope: newScope(f.scope), selectors: f.selectors, sink: f.sink, decls: f.decls}); err != nil {
		return err
	}
	if st.important && f.decls != nil {
		for i := before; i < len(*f.decls); i++ {
			(*f.decls)[i] += " !important"
		}
	}
	return nil
}

func (e *evaluator) variable(name string, sc *scope, at pos) (string, error) {
	bv := sc.lookupVar(name)
	if bv == nil {
		return "", newError(ErrName, at, "variable @%s is undefined", name)
	}
	switch bv.state {
	case 2:
		return bv.value, nil
	case 1:
		return "", newError(ErrRecursion, at, "recursive variable definition for @%s", name)
	}
	bv.state = 1
	v, err := e.value(bv.decl.value, bv.scope, bv.decl.at.file)
	if err != nil {
		bv.state = 0
		return "", err
	}
	bv.value, bv.state = v, 2
	return v, nil
}

// value evaluates a declaration value: variables are substituted, escapes
// unquoted and whitespace collapsed.
func (e *evaluator) value(toks []token, sc *scope, file string) (string, error) {
	if err := unsupported(toks, file); err != nil {
		return "", err
	}
	var b strings.Builder
	space := false
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind == tokSpace {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		at := pos{file, t.line, t.col}
		switch {
		case t.kind == tokAtKeyword:
			v, err := e.variable(t.value[1:], sc, at)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		case t.kind == tokInterp:
			v, err := e.variable(t.value, sc, at)
			if err != nil {
				return "", err
			}
			b.WriteString(unquote(v))
		case t.isChar("~") && i+1 < len(toks) && toks[i+1].kind == tokString:
			v, err := e.interpolate(unquote(toks[i+1].value), sc, at)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			i++
		case t.isChar("`"):
			return "", newError(ErrSyntax, at, "inline JavaScript is not evaluated by the builtin compiler")
		case t.kind == tokString || t.kind == tokURI:
			v, err := e.interpolate(t.value, sc, at)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		default:
			b.WriteString(t.value)
		}
	}
	return b.String(), nil
}

// text evaluates a property name or selector fragment: only @{name} is substituted.
func (e *evaluator) text(toks []token, sc *scope, file string) (string, error) {
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
			v, err := e.variable(t.value, sc, pos{file, t.line, t.col})
			if err != nil {
				return "", err
			}
			b.WriteString(unquote(v))
			continue
		}
		b.WriteString(t.value)
	}
	return b.String(), nil
}

func (e *evaluator) selectors(toks []token, sc *scope, file string) ([]string, error) {
	var out []string
	for _, part := range splitTopLevel(toks, ",") {
		s, err := e.text(trimSpace(part), sc, file)
		if err != nil {
			return nil, err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

var interpPattern = regexp.MustCompile(`@\{([\w-]+)\}`)

// interpolate substitutes @{name} inside string and url bodies.
func (e *evaluator) interpolate(s string, sc *scope, at pos) (string, error) {
	if !strings.Contains(s, "@{") {
		return s, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range interpPattern.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(s[last:m[0]])
		v, err := e.variable(s[m[2]:m[3]], sc, at)
		if err != nil {
			return "", err
		}
		b.WriteString(unquote(v))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

// splitTopLevel splits tokens on a separator character outside parentheses.
func splitTopLevel(toks []token, sep string) [][]token {
	var parts [][]token
	depth, start := 0, 0
	for i, t := range toks {
		switch {
		case t.kind == tokFunction || t.isChar("(") || t.isChar("["):
			depth++
		case t.isChar(")") || t.isChar("]"):
			depth--
		case depth == 0 && t.isChar(sep):
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	return append(parts, toks[start:])
}

// combine joins nested selectors with their parents, honouring '&'.
func combine(parents, children []string) []string {
	if len(parents) == 0 {
		out := make([]string, 0, len(children))
		for _, c := range children {
			out = append(out, strings.TrimSpace(strings.ReplaceAll(c, "&", "")))
		}
		return out
	}
	out := make([]string, 0, len(parents)*len(children))
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}

// lessFunctions are LESS built-ins without a CSS counterpart. The builtin
// compiler does not evaluate them, so they are rejected instead of copied.
var lessFunctions = map[string]bool{
	"darken": true, "lighten": true, "saturate": true, "desaturate": true,
	"fade": true, "fadein": true, "fadeout": true, "spin": true, "mix": true,
	"tint": true, "shade": true, "greyscale": true, "contrast": true,
	"luma": true, "luminance": true, "hue": true, "saturation": true,
	"lightness": true, "hsvhue": true, "hsvsaturation": true, "hsvvalue": true,
	"multiply": true, "screen": true, "overlay": true, "softlight": true,
	"hardlight": true, "difference": true, "exclusion": true, "average": true,
	"negation": true, "argb": true, "percentage": true, "unit": true,
	"get-unit": true, "ceil": true, "floor": true, "e": true, "escape": true,
	"iscolor": true, "isnumber": true, "isstring": true, "iskeyword": true,
	"isurl": true, "ispixel": true, "isem": true, "ispercentage": true,
	"isunit": true, "if": true, "boolean": true, "length": true, "extract": true,
	"range": true, "each": true, "data-uri": true, "image-size": true,
	"image-width": true, "image-height": true, "svg-gradient": true,
	"colorpalette": true,
}

// cssMath are CSS functions whose arguments are legitimately arithmetic.
var cssMath = map[string]bool{
	"calc": true, "-webkit-calc": true, "-moz-calc": true,
	"min": true, "max": true, "clamp": true,
}

// unsupported reports LESS operations and LESS-only functions in a value.
// Arithmetic is only accepted inside calc() and its relatives.
func unsupported(toks []token, file string) error {
	var stack []string
	inMath := func() bool {
		for _, name := range stack {
			if cssMath[name] {
				return true
			}
		}
		return false
	}
	for i, t := range toks {
		at := pos{file, t.line, t.col}
		switch {
		case t.isChar("`"):
			return nil // reported by value
		case t.kind == tokFunction:
			name := strings.ToLower(strings.TrimSuffix(t.value, "("))
			if lessFunctions[name] {
				return newError(ErrSyntax, at, "function %s() is not supported by the builtin compiler, use the lessc compiler", name)
			}
			stack = append(stack, name)
		case t.isChar("("):
			stack = append(stack, "")
		case t.isChar(")"):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case t.isChar("+") || t.isChar("*") || t.isChar("-"):
			if inMath() || !isOperation(toks, i) {
				continue
			}
			return newError(ErrSyntax, at, "operation %q is not supported by the builtin compiler, use calc() or the lessc compiler", t.value)
		}
	}
	return nil
}

// isOperation reports whether the operator at i sits between two operands.
// A minus only counts when spaced on both sides, so "-1px" and "a-b" remain.
func isOperation(toks []token, i int) bool {
	prev, next := -1, -1
	for j := i - 1; j >= 0; j-- {
		if toks[j].kind != tokSpace {
			prev = j
			break
		}
	}
	for j := i + 1; j < len(toks); j++ {
		if toks[j].kind != tokSpace {
			next = j
			break
		}
	}
	if prev < 0 || next < 0 {
		return false
	}
	if toks[i].isChar("-") && (toks[i-1].kind != tokSpace || toks[i+1].kind != tokSpace) {
		return false
	}
	left := toks[prev]
	right := toks[next]
	operandLeft := left.kind == tokNumber || left.kind == tokAtKeyword || left.kind == tokInterp || left.isChar(")")
	operandRight := right.kind == tokNumber || right.kind == tokAtKeyword || right.kind == tokInterp ||
		right.kind == tokFunction || right.isChar("(")
	return operandLeft && operandRight
}
