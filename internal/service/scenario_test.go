package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"spotapi/internal/model"
	"spotapi/internal/repository/memory"
	"spotapi/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalService(t *testing.T) SpotService {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return NewSpotService(storage.NewStager(store), memory.NewSpotMemory(), nil, nil)
}

func form(name, desc, image string) SpotInput {
	return SpotInput{Name: name, Description: desc, Image: strings.NewReader(image), ImageSize: int64(len(image))}
}

func spotNamed(items []model.Spot, name string) []model.Spot {
	var out []model.Spot
	for _, s := range items {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

func TestScenario_UpsertOverwritesByName(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	first, err := svc.Create(ctx, form("Beach", "Sunny", "ref1"))
	require.NoError(t, err)
	require.NotNil(t, first.ImageRef)
	assert.True(t, strings.HasPrefix(*first.ImageRef, "file://"))

	res, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Beach", res.Items[0].Name)
	assert.Equal(t, "Sunny", res.Items[0].Description)
	assert.Equal(t, *first.ImageRef, *res.Items[0].ImageRef)

	_, err = svc.Create(ctx, form("Beach", "Rainy", "ref2"))
	require.NoError(t, err)

	res, err = svc.List(ctx)
	require.NoError(t, err)
	beaches := spotNamed(res.Items, "Beach")
	require.Len(t, beaches, 1)
	assert.Equal(t, "Rainy", beaches[0].Description)

	rc, _, err := svc.OpenImage(ctx, "Beach")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "ref2", string(b))
}

func TestScenario_DeleteLeavesEmptyCollection(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	_, err := svc.Create(ctx, form("Beach", "Sunny", "ref1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "Beach"))

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)

	_, err = svc.Get(ctx, "Beach")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScenario_InvalidFormWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc := newLocalService(t)

	_, err := svc.Create(ctx, SpotInput{Name: "Beach", Description: "Sunny"})
	assert.ErrorIs(t, err, ErrImageRequired)

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}
