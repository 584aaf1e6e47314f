package ports

import (
	"context"

	"github.com/aretw0/themer/pkg/domain"
)

// ModuleResolver locates an installed package directory by name.
// It returns an error wrapping fs.ErrNotExist when the package is absent.
type ModuleResolver interface {
	Resolve(name string) (string, error)
}

// KitProvider supplies the content of one optional kit layer.
// It never fails: absent or disabled kits yield a passthrough layer.
type KitProvider interface {
	ThemeLayer(ctx context.Context) domain.KitLayer
}

// Palette is a static table of theme variable defaults.
type Palette interface {
	Vars() map[string]string
}
