package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/themer/pkg/adapters/redis"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunStateStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.SpecsStateKey, []byte("[]")))

	mr.FastForward(2 * time.Second)

	_, err := store.Load(ctx, domain.SpecsStateKey)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.OverridesStateKey, []byte("{}")))

	assert.True(t, mr.Exists("custom:app:modifyVars"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	// A reset of one prefix leaves another project's state alone.
	other := redis.NewFromClient(client)
	require.NoError(t, other.Save(ctx, domain.OverridesStateKey, []byte(`{"a":"b"}`)))
	require.NoError(t, store.Reset(ctx))

	assert.False(t, mr.Exists("custom:app:modifyVars"))
	assert.False(t, mr.Exists("custom:app:index"))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"modifyVars"))
}

func TestRedisStore_ResetEmpty(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	assert.NoError(t, store.Reset(context.Background()))
}
