package ports

import (
	"context"
	"testing"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte(`[{"theme":"dark","modifyVars":{"primary-color":"#177ddc"},"fileName":"dark.css"}]`)

		err := store.Save(ctx, domain.SpecsStateKey, payload)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, domain.SpecsStateKey)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, payload, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.OverridesStateKey, []byte(`{"a":"1"}`)))
		require.NoError(t, store.Save(ctx, domain.OverridesStateKey, []byte(`{}`)))

		loaded, err := store.Load(ctx, domain.OverridesStateKey)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent")
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "to-delete", []byte("x")))

		err := store.Delete(ctx, "to-delete")
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, "to-delete")
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")

		assert.NoError(t, store.Delete(ctx, "to-delete"), "Deleting twice is not an error")
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.SpecsStateKey, []byte("[]")))
		require.NoError(t, store.Save(ctx, domain.OverridesStateKey, []byte("{}")))

		require.NoError(t, store.Reset(ctx))

		_, err := store.Load(ctx, domain.SpecsStateKey)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
		_, err = store.Load(ctx, domain.OverridesStateKey)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)

		// The store stays usable after a reset.
		require.NoError(t, store.Save(ctx, domain.SpecsStateKey, []byte("[]")))
	})
}
