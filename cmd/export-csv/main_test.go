package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galvani/internal/auth"
	"galvani/internal/catalog"
	"galvani/internal/notebook"
	"galvani/internal/redox"
	"galvani/pkg/database"
)

func TestWriteSpecies(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeSpecies(catalog.Extended(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 21)
	assert.Equal(t, []string{"1", "Li(s)", "reduced", "Li+(aq)", "Li", "-3.04"}, rows[1])
	assert.Equal(t, []string{"20", "Au3+(aq)", "oxidized", "Au(s)", "Au", "1.50"}, rows[20])
}

func TestWriteNotebook(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenAndMigrate(database.Config{Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, auth.NewRepo(db).CreateUser(ctx, auth.User{ID: "u1", Username: "u1", Email: "u1@lab.io", PasswordHash: "x"}))
	repo := notebook.NewRepo(db)

	for _, c := range []*catalog.Catalog{catalog.Daniell(), catalog.Extended()} {
		res, err := redox.NewEngine(c).Simulate("Zn(s)", "Cu2+(aq)")
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, notebook.EntryFrom("u1", c.Name(), "Zn(s)", "Cu2+(aq)", "", res)))
	}

	var buf bytes.Buffer
	n, err := writeNotebook(ctx, repo, "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	potentials := []string{rows[1][9], rows[2][9]}
	assert.ElementsMatch(t, []string{"", "1.10"}, potentials)
}
