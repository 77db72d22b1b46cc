// Package notebook persists resolved cells per user.
package notebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"galvani/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// EntryFrom builds an unsaved entry for a resolution.
func EntryFrom(userID, catalogName, first, second, note string, res models.Resolution) models.NotebookEntry {
	return models.NotebookEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		Catalog:       catalogName,
		First:         first,
		Second:        second,
		Mode:          res.Mode,
		Donor:         res.Donor.Formula,
		Acceptor:      res.Acceptor.Formula,
		Equation:      res.Equation.String(),
		CellPotential: res.CellPotential,
		Note:          note,
		CreatedAt:     time.Now().UTC(),
	}
}

func (r *Repo) Insert(ctx context.Context, e models.NotebookEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notebook_entries
			(id, user_id, catalog, first, second, mode, donor, acceptor, equation, cell_potential, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Catalog, e.First, e.Second, string(e.Mode), e.Donor, e.Acceptor,
		e.Equation, e.CellPotential, e.Note, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notebook entry: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM notebook_entries
		WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return false, fmt.Errorf("delete notebook entry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

const selectEntry = `
	SELECT id, user_id, catalog, first, second, mode, donor, acceptor, equation, cell_potential, note, created_at
	FROM notebook_entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.NotebookEntry, error) {
	var (
		e    models.NotebookEntry
		mode string
		ddp  sql.NullFloat64
	)
	if err := s.Scan(&e.ID, &e.UserID, &e.Catalog, &e.First, &e.Second, &mode,
		&e.Donor, &e.Acceptor, &e.Equation, &ddp, &e.Note, &e.CreatedAt); err != nil {
		return models.NotebookEntry{}, err
	}
	e.Mode = models.Mode(mode)
	if ddp.Valid {
		v := ddp.Float64
		e.CellPotential = &v
	}
	return e, nil
}

// Get returns nil, nil when the entry does not exist or belongs to someone else.
func (r *Repo) Get(ctx context.Context, userID, id string) (*models.NotebookEntry, error) {
	row := r.DB.QueryRowContext(ctx, selectEntry+` WHERE user_id = ? AND id = ?`, userID, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notebook entry: %w", err)
	}
	return &e, nil
}

// List pages through a user's entries, newest first. An empty mode lists all.
func (r *Repo) List(ctx context.Context, userID string, mode models.Mode, limit, offset int) ([]models.NotebookEntry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ` WHERE user_id = ?`
	args := []any{userID}
	if mode != "" {
		where += ` AND mode = ?`
		args = append(args, string(mode))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notebook_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notebook: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, selectEntry+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notebook: %w", err)
	}
	defer rows.Close()

	out := make([]models.NotebookEntry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notebook row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

// Each streams every entry, oldest first, optionally for one user only.
func (r *Repo) Each(ctx context.Context, userID string, fn func(models.NotebookEntry) error) error {
	query := selectEntry
	var args []any
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	rows, err := r.DB.QueryContext(ctx, query+` ORDER BY created_at, id`, args...)
	if err != nil {
		return fmt.Errorf("export notebook: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("scan notebook row: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}
