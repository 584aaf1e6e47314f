package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/themer/pkg/adapters/memory"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte(".x{color:red}"))
	b := Fingerprint([]byte(".x{color:red}"))
	c := Fingerprint([]byte(".x{color:red} "))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 64)
	assert.NotEqual(t, domain.MissingFingerprint, Fingerprint(nil))
	assert.NotEqual(t, domain.MissingFingerprint, Fingerprint([]byte{}))
}

func TestCache_AggregateUnchanged(t *testing.T) {
	scratch := t.TempDir()
	cache := NewCache(scratch, memory.NewStore())

	prev, err := cache.PreviousAggregate()
	require.NoError(t, err)
	assert.Equal(t, domain.MissingFingerprint, prev)

	// An empty aggregate with no previous artifact is still a change.
	unchanged, _, err := cache.AggregateUnchanged("")
	require.NoError(t, err)
	assert.False(t, unchanged)

	require.NoError(t, cache.WriteLayer(domain.LayerTemp, ".a{}"))
	unchanged, fp, err := cache.AggregateUnchanged(".a{}")
	require.NoError(t, err)
	assert.True(t, unchanged)
	assert.Equal(t, Fingerprint([]byte(".a{}")), fp)

	unchanged, _, err = cache.AggregateUnchanged(".b{}")
	require.NoError(t, err)
	assert.False(t, unchanged)
}

func TestCache_Specs(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(t.TempDir(), memory.NewStore())

	specs := []domain.ThemeSpec{{Theme: "dark", ModifyVars: map[string]string{"b": "2", "a": "1"}, FileName: "dark.css"}}
	encoded, err := EncodeSpecs(specs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"theme":"dark","modifyVars":{"a":"1","b":"2"},"fileName":"dark.css"}]`, string(encoded))

	unchanged, err := cache.SpecsUnchanged(ctx, encoded)
	require.NoError(t, err)
	assert.False(t, unchanged, "nothing stored yet")

	require.NoError(t, cache.SaveSpecs(ctx, encoded))

	// Map order never matters.
	again, err := EncodeSpecs([]domain.ThemeSpec{{Theme: "dark", ModifyVars: map[string]string{"a": "1", "b": "2"}, FileName: "dark.css"}})
	require.NoError(t, err)
	unchanged, err = cache.SpecsUnchanged(ctx, again)
	require.NoError(t, err)
	assert.True(t, unchanged)

	// Reordering the sequence is a change.
	reordered, err := EncodeSpecs([]domain.ThemeSpec{{FileName: "light.css"}, specs[0]})
	require.NoError(t, err)
	require.NoError(t, cache.SaveSpecs(ctx, mustEncode(t, append(specs, domain.ThemeSpec{FileName: "light.css"}))))
	unchanged, err = cache.SpecsUnchanged(ctx, reordered)
	require.NoError(t, err)
	assert.False(t, unchanged)

	empty, err := EncodeSpecs(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func mustEncode(t *testing.T, specs []domain.ThemeSpec) []byte {
	t.Helper()
	data, err := EncodeSpecs(specs)
	require.NoError(t, err)
	return data
}

func TestCache_Wipe(t *testing.T) {
	ctx := context.Background()
	scratch := filepath.Join(t.TempDir(), "scratch")
	store := memory.NewStore()
	cache := NewCache(scratch, store)

	require.NoError(t, cache.Ensure())
	require.NoError(t, cache.WriteLayer(domain.LayerPro, ".x{}"))
	require.NoError(t, cache.SaveSpecs(ctx, []byte("[]")))

	require.NoError(t, cache.Wipe(ctx))
	_, err := os.Stat(scratch)
	assert.True(t, os.IsNotExist(err))
	_, err = store.Load(ctx, domain.SpecsStateKey)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	// Wiping twice is fine.
	require.NoError(t, cache.Wipe(ctx))
}

func TestCache_WriteLayerMissingScratch(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "missing"), memory.NewStore())
	assert.ErrorIs(t, cache.WriteLayer(domain.LayerTemp, ""), domain.ErrIO)
}
