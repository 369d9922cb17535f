package memory

import (
	"context"
	"testing"

	"spotapi/internal/model"
	"spotapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(s string) *string { return &s }

func TestSpotMemory_UpsertOverwrites(t *testing.T) {
	repo := NewSpotMemory()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, model.Spot{Name: "Beach", Description: "Sunny", ImageRef: ref("file:///a.jpg")})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, model.Spot{Name: "Mountain", Description: "Cold"})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, model.Spot{Name: "Beach", Description: "Rainy", ImageRef: ref("file:///b.jpg")})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Beach", items[0].Name)
	assert.Equal(t, "Rainy", items[0].Description)
	assert.Equal(t, "file:///b.jpg", *items[0].ImageRef)
	assert.Equal(t, "Mountain", items[1].Name)
	assert.Nil(t, items[1].ImageRef)
}

func TestSpotMemory_FindAndDelete(t *testing.T) {
	repo := NewSpotMemory()
	ctx := context.Background()

	_, err := repo.FindByName(ctx, "Beach")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Upsert(ctx, model.Spot{Name: "Beach", Description: "Sunny"})
	require.NoError(t, err)

	got, err := repo.FindByName(ctx, "Beach")
	require.NoError(t, err)
	assert.Equal(t, "Sunny", got.Description)

	require.NoError(t, repo.Delete(ctx, "Beach"))
	require.NoError(t, repo.Delete(ctx, "Beach"), "deleting a missing spot is not an error")

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestSpotMemory_CanceledContext(t *testing.T) {
	repo := NewSpotMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, items)
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
