package domain

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeSpec_ThemeName(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeSpec{}.ThemeName())
	assert.Equal(t, ThemeDark, ThemeSpec{Theme: ThemeDark}.ThemeName())
}

func TestCompileError_Error(t *testing.T) {
	assert.Equal(t, "NameError: variable @c is undefined",
		(&CompileError{Type: "NameError", Message: "variable @c is undefined"}).Error())
	assert.Equal(t, "ParseError: missing closing `}` in index.less on line 3, column 1",
		(&CompileError{Type: "ParseError", Message: "missing closing `}`", File: "index.less", Line: 3, Column: 1}).Error())
}

func TestResolutionError_Unwrap(t *testing.T) {
	err := error(&ResolutionError{Subject: "ygd", Err: fs.ErrNotExist})
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "resolve ygd: file does not exist", err.Error())

	var re *ResolutionError
	assert.True(t, errors.As(err, &re))
}

func TestReport_Failed(t *testing.T) {
	r := &Report{Themes: []ThemeReport{
		{Index: 0, Written: true},
		{Index: 1, Err: errors.New("boom")},
		{Index: 2, Written: true},
	}}
	failed := r.Failed()
	assert.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)
	assert.Empty(t, (&Report{}).Failed())
}

func TestFingerprint_Short(t *testing.T) {
	assert.Equal(t, "000000000000", MissingFingerprint.Short())
	assert.Len(t, MissingFingerprint.String(), 64)
	assert.Equal(t, "abc", Fingerprint("abc").Short())
}

func TestPassthroughLayer(t *testing.T) {
	l := PassthroughLayer(DefaultThemeKit, ErrKitDisabled)
	assert.True(t, l.Passthrough)
	assert.Empty(t, l.Content)
	assert.ErrorIs(t, l.Reason, ErrKitDisabled)
}
