package less

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Kinds(t *testing.T) {
	toks, err := tokenize("a.less", `@c:#fff;x{width:calc(1px)}`)
	require.NoError(t, err)

	var kinds []tokenKind
	var values []string
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
		values = append(values, tok.value)
	}
	assert.Equal(t, []tokenKind{
		tokAtKeyword, tokChar, tokHash, tokChar,
		tokIdent, tokChar, tokIdent, tokChar, tokFunction, tokNumber, tokChar, tokChar,
	}, kinds)
	assert.Equal(t, []string{
		"@c", ":", "#fff", ";",
		"x", "{", "width", ":", "calc(", "1px", ")", "}",
	}, values)
}

func TestTokenize_Interpolation(t *testing.T) {
	toks, err := tokenize("a.less", `@{name}`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, tokInterp, toks[0].kind)
	assert.Equal(t, "name", toks[0].value)
}
