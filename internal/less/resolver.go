package less

import (
	"context"
	"strings"

	"github.com/aretw0/themer/pkg/ports"
)

// Resolver is the builtin ports.VariableResolver.
//
// It inlines block-scoped variables into literal values and drops their
// declarations. Root variables stay symbolic: they are the ones theme
// overrides replace at render time.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve parses content and prints it back with block-local variables inlined.
func (r *Resolver) Resolve(ctx context.Context, filename, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stmts, err := parse(filename, content)
	if err != nil {
		return "", err
	}
	out, err := inlineBlock(stmts, nil, true)
	if err != nil {
		return "", err
	}
	return printLess(out), nil
}

type localEnv map[string][]token

// inlineBlock substitutes the visible block-local variables in stmts.
// env holds the already-resolved locals of the enclosing blocks.
func inlineBlock(stmts []statement, env localEnv, root bool) ([]statement, error) {
	locals := env
	if !root {
		raw := map[string]*varDecl{}
		for _, st := range stmts {
			if v, ok := st.(*varDecl); ok {
				raw[v.name] = v
			}
		}
		if len(raw) > 0 {
			locals = make(localEnv, len(env)+len(raw))
			for k, v := range env {
				locals[k] = v
			}
			res := &localResolver{raw: raw, outer: env, done: locals, state: map[string]int{}}
			for name := range raw {
				if _, err := res.resolve(name); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make([]statement, 0, len(stmts))
	for _, st := range stmts {
		switch st := st.(type) {
		case *varDecl:
			if root {
				out = append(out, st)
			}
		case *decl:
			out = append(out, &decl{at: st.at, property: substitute(st.property, locals), value: substitute(st.value, locals)})
		case *ruleset:
			body, err := inlineBlock(st.body, locals, false)
			if err != nil {
				return nil, err
			}
			out = append(out, &ruleset{at: st.at, selector: substitute(st.selector, locals), body: body})
		case *mixinDef:
			body, err := inlineBlock(st.body, locals, false)
			if err != nil {
				return nil, err
			}
			out = append(out, &mixinDef{at: st.at, name: st.name, body: body})
		case *atRule:
			n := &atRule{at: st.at, name: st.name, prelude: substitute(st.prelude, locals), block: st.block}
			if st.block {
				body, err := inlineBlock(st.body, locals, false)
				if err != nil {
					return nil, err
				}
				n.body = body
			}
			out = append(out, n)
		default:
			out = append(out, st)
		}
	}
	return out, nil
}

type localResolver struct {
	raw    map[string]*varDecl
	outer  localEnv
	done   localEnv
	state  map[string]int // 1 resolving, 2 resolved
}

func (r *localResolver) resolve(name string) ([]token, error) {
	decl, ok := r.raw[name]
	if !ok {
		return r.outer[name], nil
	}
	switch r.state[name] {
	case 1:
		return nil, newError(ErrRecursion, decl.at, "recursive variable definition for @%s", name)
	case 2:
		return r.done[name], nil
	}
	r.state[name] = 1
	var out []token
	for _, t := range decl.value {
		ref, isRef := refName(t)
		if !isRef {
			out = append(out, t)
			continue
		}
		if _, local := r.raw[ref]; !local {
			if _, outer := r.outer[ref]; !outer {
				out = append(out, t)
				continue
			}
		}
		val, err := r.resolve(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, replacement(t, val)...)
	}
	r.state[name] = 2
	r.done[name] = out
	return out, nil
}

func refName(t token) (string, bool) {
	switch t.kind {
	case tokAtKeyword:
		return t.value[1:], true
	case tokInterp:
		return t.value, true
	}
	return "", false
}

// replacement is what a reference token becomes once its variable is known.
func replacement(ref token, val []token) []token {
	if ref.kind == tokInterp {
		return []token{{kind: tokRaw, value: unquote(render(val)), line: ref.line, col: ref.col}}
	}
	return append([]token(nil), val...)
}

func substitute(toks []token, env localEnv) []token {
	if len(env) == 0 {
		return toks
	}
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if name, ok := refName(t); ok {
			if val, found := env[name]; found {
				out = append(out, replacement(t, val)...)
				continue
			}
		}
		if (t.kind == tokString || t.kind == tokURI) && strings.Contains(t.value, "@{") {
			t.value = interpPattern.ReplaceAllStringFunc(t.value, func(m string) string {
				if val, found := env[m[2:len(m)-1]]; found {
					return unquote(render(val))
				}
				return m
			})
		}
		out = append(out, t)
	}
	return out
}

var _ ports.VariableResolver = (*Resolver)(nil)
