//go:build integration

package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := mongodb.RunContainer(ctx,
		tc.WithImage("mongo:6"),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Terminate(ctx))
	}()

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	store := NewStore(client, "kasir_test")

	_, err = store.Get(ctx, "cartItems")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, "cartItems", []byte(`[{"sku":"A"}]`)))
	require.NoError(t, store.Set(ctx, "cartItems", []byte(`[]`)))

	value, err := store.Get(ctx, "cartItems")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(value))

	require.NoError(t, store.Remove(ctx, "cartItems"))
	_, err = store.Get(ctx, "cartItems")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
