package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/themer/internal/fsutil"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// Fingerprint returns the hex sha256 of b.
func Fingerprint(b []byte) domain.Fingerprint {
	sum := sha256.Sum256(b)
	return domain.Fingerprint(hex.EncodeToString(sum[:]))
}

// Cache decides whether a run can be skipped. The previous aggregate is the
// temp artifact itself; the spec sequence and override snapshot live in the store.
type Cache struct {
	scratch string
	store   ports.StateStore
}

// NewCache creates a cache over the scratch directory.
func NewCache(scratch string, store ports.StateStore) *Cache {
	return &Cache{scratch: scratch, store: store}
}

// Scratch returns the scratch directory.
func (c *Cache) Scratch() string {
	return c.scratch
}

// Path returns the scratch path of a layer.
func (c *Cache) Path(layer domain.Layer) string {
	return filepath.Join(c.scratch, layer.FileName())
}

// Ensure creates the scratch directory if needed.
func (c *Cache) Ensure() error {
	if err := os.MkdirAll(c.scratch, 0755); err != nil {
		return fmt.Errorf("%w: create scratch directory: %v", domain.ErrIO, err)
	}
	return nil
}

// Wipe removes the scratch directory and resets the state store.
func (c *Cache) Wipe(ctx context.Context) error {
	if err := os.RemoveAll(c.scratch); err != nil {
		return fmt.Errorf("%w: wipe scratch directory: %v", domain.ErrIO, err)
	}
	if err := c.store.Reset(ctx); err != nil {
		return fmt.Errorf("%w: reset cache state: %v", domain.ErrIO, err)
	}
	return nil
}

// PreviousAggregate returns the fingerprint of the stored temp artifact,
// or domain.MissingFingerprint when there is none.
func (c *Cache) PreviousAggregate() (domain.Fingerprint, error) {
	data, ok, err := fsutil.ReadFileIfExists(c.Path(domain.LayerTemp))
	if err != nil {
		return "", fmt.Errorf("%w: read previous aggregate: %v", domain.ErrIO, err)
	}
	if !ok {
		return domain.MissingFingerprint, nil
	}
	return Fingerprint(data), nil
}

// AggregateUnchanged compares content against the previous aggregate.
// It also returns the fingerprint of content.
func (c *Cache) AggregateUnchanged(content string) (bool, domain.Fingerprint, error) {
	current := Fingerprint([]byte(content))
	previous, err := c.PreviousAggregate()
	if err != nil {
		return false, current, err
	}
	return current == previous, current, nil
}

// EncodeSpecs is the persisted form of a spec sequence. Map keys are sorted
// by encoding/json, so equal sequences encode to equal bytes.
func EncodeSpecs(specs []domain.ThemeSpec) ([]byte, error) {
	if specs == nil {
		specs = []domain.ThemeSpec{}
	}
	return json.Marshal(specs)
}

// SpecsUnchanged compares the encoded sequence against the stored one.
func (c *Cache) SpecsUnchanged(ctx context.Context, encoded []byte) (bool, error) {
	previous, err := c.store.Load(ctx, domain.SpecsStateKey)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: load spec sequence: %v", domain.ErrIO, err)
	}
	return Fingerprint(previous) == Fingerprint(encoded), nil
}

// SaveSpecs overwrites the stored spec sequence.
func (c *Cache) SaveSpecs(ctx context.Context, encoded []byte) error {
	if err := c.store.Save(ctx, domain.SpecsStateKey, encoded); err != nil {
		return fmt.Errorf("%w: save spec sequence: %v", domain.ErrIO, err)
	}
	return nil
}

// SaveOverrides records the overrides of the last successfully rendered spec.
func (c *Cache) SaveOverrides(ctx context.Context, vars map[string]string) error {
	if vars == nil {
		vars = map[string]string{}
	}
	data, err := json.Marshal(vars)
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, domain.OverridesStateKey, data); err != nil {
		return fmt.Errorf("%w: save overrides: %v", domain.ErrIO, err)
	}
	return nil
}

// WriteLayer overwrites a layer artifact.
func (c *Cache) WriteLayer(layer domain.Layer, content string) error {
	if err := fsutil.WriteFileAtomic(c.Path(layer), []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrIO, layer.FileName(), err)
	}
	return nil
}

// ForgetSpecs drops the stored spec sequence so the next run renders every
// theme again. Used when a run stops before all themes were rendered.
func (c *Cache) ForgetSpecs(ctx context.Context) error {
	if err := c.store.Delete(ctx, domain.SpecsStateKey); err != nil {
		return fmt.Errorf("%w: forget spec sequence: %v", domain.ErrIO, err)
	}
	return nil
}

// ForgetAggregate removes the temp artifact so the next run layers again.
func (c *Cache) ForgetAggregate() error {
	if err := os.Remove(c.Path(domain.LayerTemp)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrIO, domain.LayerTemp.FileName(), err)
	}
	return nil
}
