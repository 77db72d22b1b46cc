package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"galvani/internal/catalog"
	"galvani/internal/logging"
	"galvani/internal/notebook"
	"galvani/pkg/database"
	"galvani/pkg/models"
)

func main() {
	var (
		notebookOut = flag.String("notebook", "data/notebook.csv", "output CSV path for notebook entries")
		speciesOut  = flag.String("species", "", "also export this species table as CSV (path)")
		catalogName = flag.String("catalog", catalog.NameExtended, "species table for -species")
		userID      = flag.String("user", "", "only export this user's entries")
	)
	flag.Parse()

	logger := logging.Must("info", "development")
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	n, err := toFile(*notebookOut, func(w io.Writer) (int, error) {
		return writeNotebook(ctx, notebook.NewRepo(db), *userID, w)
	})
	if err != nil {
		logger.Fatal("export notebook failed", zap.Error(err))
	}
	logger.Info("exported notebook", zap.Int("entries", n), zap.String("path", *notebookOut))

	if *speciesOut == "" {
		return
	}
	cat, err := catalog.ByName(*catalogName)
	if err != nil {
		logger.Fatal("select catalog", zap.Error(err))
	}
	n, err = toFile(*speciesOut, func(w io.Writer) (int, error) { return writeSpecies(cat, w) })
	if err != nil {
		logger.Fatal("export species failed", zap.Error(err))
	}
	logger.Info("exported species", zap.Int("species", n), zap.String("path", *speciesOut))
}

func toFile(path string, write func(io.Writer) (int, error)) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func writeNotebook(ctx context.Context, repo *notebook.Repo, userID string, out io.Writer) (int, error) {
	w := csv.NewWriter(out)
	if err := w.Write([]string{
		"id", "user_id", "catalog", "first", "second", "mode", "donor", "acceptor", "equation", "cell_potential", "note", "created_at",
	}); err != nil {
		return 0, err
	}

	n := 0
	err := repo.Each(ctx, userID, func(e models.NotebookEntry) error {
		ddp := ""
		if e.CellPotential != nil {
			ddp = strconv.FormatFloat(*e.CellPotential, 'f', 2, 64)
		}
		n++
		return w.Write([]string{
			e.ID, e.UserID, e.Catalog, e.First, e.Second, string(e.Mode), e.Donor, e.Acceptor,
			e.Equation, ddp, e.Note, e.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		return n, fmt.Errorf("write notebook rows: %w", err)
	}
	w.Flush()
	return n, w.Error()
}

func writeSpecies(cat *catalog.Catalog, out io.Writer) (int, error) {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"key", "formula", "role", "conjugate", "element", "potential"}); err != nil {
		return 0, err
	}
	n := 0
	for s := range cat.All() {
		potential := ""
		if s.HasPotential() {
			potential = strconv.FormatFloat(s.PotentialValue(), 'f', 2, 64)
		}
		if err := w.Write([]string{
			strconv.Itoa(s.Key), s.Formula, string(s.Role), s.Conjugate, s.ElementSymbol(), potential,
		}); err != nil {
			return n, err
		}
		n++
	}
	w.Flush()
	return n, w.Error()
}
