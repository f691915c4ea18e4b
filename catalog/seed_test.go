// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David01mc/CarnavalWEB-sub000/catalog"
	"github.com/David01mc/CarnavalWEB-sub000/testutil"
)

func TestLoadSeed(t *testing.T) {
	f, err := os.Open("testdata/seed.yaml")
	require.NoError(t, err)
	defer f.Close()

	list, err := catalog.LoadSeed(f)
	require.NoError(t, err)
	require.Len(t, list, 6)

	assert.Equal(t, "a01", list[0].ID)
	assert.Equal(t, "Los Hijos de la Viña", list[0].Name)
	assert.Equal(t, "Chirigota", list[0].Tipo)
	assert.Equal(t, "2026", list[0].Year)

	// missing id is generated
	assert.Len(t, list[5].ID, 16)
	assert.Equal(t, "Chirigota del Mentidero", list[5].Name)
}

func TestLoadSeed_Invalid(t *testing.T) {
	_, err := catalog.LoadSeed(strings.NewReader("agrupaciones:\n  - id: x\n    name: '  '\n"))
	assert.ErrorContains(t, err, "name is required")

	_, err = catalog.LoadSeed(strings.NewReader("agrupaciones: ["))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	store := testutil.SetupTestStore(t)
	svc := catalog.NewService(store)
	ctx := context.Background()

	n, err := svc.ImportFile(ctx, "testdata/seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	// ids in the file are stable, so a second import updates in place
	_, err = svc.ImportFile(ctx, "testdata/seed.yaml")
	require.NoError(t, err)

	got, err := svc.Search(ctx, "faro")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a02", got[0].ID)

	_, err = svc.ImportFile(ctx, "testdata/missing.yaml")
	assert.Error(t, err)
}
