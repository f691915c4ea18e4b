// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David01mc/CarnavalWEB-sub000/auth"
	"github.com/David01mc/CarnavalWEB-sub000/db"
	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// setupMongo connects to MONGO_URL and returns a store over a throwaway
// database, skipping the test when no server is configured.
func setupMongo(t *testing.T) *db.MongoStore {
	t.Helper()

	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	suffix, err := auth.GenerateID(4)
	require.NoError(t, err)
	database := client.Database("bingo_test_" + suffix)

	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	store := db.NewMongoStore(database)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestMongoStore_Progress(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	p, err := store.EnsureProgress(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.Empty(t, p.Cells)
	assert.Nil(t, p.CompletedAt)

	p, replaced, err := store.UpsertMarkedCell(ctx, "ana", "2026", cell(3))
	require.NoError(t, err)
	assert.False(t, replaced)
	require.Len(t, p.Cells, 1)

	replacement := cell(3)
	replacement.Pase = models.PaseCuple
	p, replaced, err = store.UpsertMarkedCell(ctx, "ana", "2026", replacement)
	require.NoError(t, err)
	assert.True(t, replaced)
	require.Len(t, p.Cells, 1)
	assert.Equal(t, models.PaseCuple, p.Cells[0].Pase)

	require.NoError(t, store.RemoveMarkedCell(ctx, "ana", "2026", 3, now))
	p, err = store.EnsureProgress(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.Empty(t, p.Cells)
}

func TestMongoStore_MarkCompleted(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	for id := 1; id < models.CellCount; id++ {
		_, _, err := store.UpsertMarkedCell(ctx, "ana", "2026", cell(id))
		require.NoError(t, err)
	}
	ok, err := store.MarkCompleted(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = store.UpsertMarkedCell(ctx, "ana", "2026", cell(models.CellCount))
	require.NoError(t, err)
	ok, err = store.MarkCompleted(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.MarkCompleted(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ResetProgress(ctx, "ana", "2026", now))
	p, err := store.EnsureProgress(ctx, "ana", "2026", now)
	require.NoError(t, err)
	assert.Empty(t, p.Cells)
	assert.Nil(t, p.CompletedAt)
}

func TestMongoStore_Template(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	defaults := models.BingoTemplate{Year: "2026", CreatedAt: now, UpdatedAt: now,
		Cells: []models.TemplateCell{{ID: 1, Title: "a", Position: 0}, {ID: 2, Title: "b", Position: 1}}}
	tpl, err := store.EnsureTemplate(ctx, defaults)
	require.NoError(t, err)
	require.Len(t, tpl.Cells, 2)

	matched, err := store.SetCellTitle(ctx, "2026", 2, "z", now)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = store.SetCellTitle(ctx, "2026", 9, "z", now)
	require.NoError(t, err)
	assert.False(t, matched)

	tpl, err = store.EnsureTemplate(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, "z", tpl.Cells[1].Title)
}

func TestMongoStore_Catalog(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertAgrupacion(ctx, models.Agrupacion{ID: "b", Name: "Coro de la Batea", Tipo: "Coro"}))
	require.NoError(t, store.UpsertAgrupacion(ctx, models.Agrupacion{ID: "a", Name: "Ángeles de la Caleta", Tipo: "Comparsa"}))

	list, err := store.ListAgrupaciones(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
}
