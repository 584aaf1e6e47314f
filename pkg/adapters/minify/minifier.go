// Package minify adapts tdewolff/minify to the ports.Minifier interface.
package minify

import (
	"fmt"

	"github.com/aretw0/themer/pkg/ports"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const mediaType = "text/css"

// Minifier compacts compiled stylesheets.
type Minifier struct {
	m *minify.M
}

var _ ports.Minifier = (*Minifier)(nil)

// New creates a CSS minifier. Decimals are kept at full precision so color
// channels survive byte for byte.
func New() *Minifier {
	m := minify.New()
	m.Add(mediaType, &css.Minifier{Precision: 0})
	return &Minifier{m: m}
}

// Minify returns the minified form of src.
func (m *Minifier) Minify(src string) (string, error) {
	out, err := m.m.String(mediaType, src)
	if err != nil {
		return "", fmt.Errorf("minify css: %w", err)
	}
	return out, nil
}
