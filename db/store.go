// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// Placeholders are always introduced in ascending order ($1, $2, ...) so the
// same statements bind positionally on both lib/pq and SQLite.

// SQLStore persists bingo state and the catalog in PostgreSQL or SQLite.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLStore) withinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// EnsureTemplate inserts defaults when the year has no template and returns
// the stored one. Concurrent first accesses serialize on the primary key.
func (s *SQLStore) EnsureTemplate(ctx context.Context, defaults models.BingoTemplate) (models.BingoTemplate, error) {
	var tpl models.BingoTemplate
	err := s.withinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO bingo_template (year, created_at, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (year) DO NOTHING
		`, defaults.Year, defaults.CreatedAt.UTC(), defaults.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}

		created, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}

		if created == 1 {
			for _, c := range defaults.Cells {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO bingo_template_cell (year, cell_id, title, position)
					VALUES ($1, $2, $3, $4)
				`, defaults.Year, c.ID, c.Title, c.Position)
				if err != nil {
					return fmt.Errorf("insert template cell %d: %w", c.ID, err)
				}
			}
		}

		tpl, err = getTemplate(ctx, tx, defaults.Year)
		return err
	})
	return tpl, err
}

func (s *SQLStore) SetCellTitle(ctx context.Context, year string, cellID int, title string, now time.Time) (bool, error) {
	var matched bool
	err := s.withinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE bingo_template_cell SET title = $1
			WHERE year = $2 AND cell_id = $3
		`, title, year, cellID)
		if err != nil {
			return fmt.Errorf("update cell title: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update cell title: %w", err)
		}
		matched = n > 0
		if !matched {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE bingo_template SET updated_at = $1 WHERE year = $2
		`, now.UTC(), year)
		if err != nil {
			return fmt.Errorf("touch template: %w", err)
		}
		return nil
	})
	return matched, err
}

func (s *SQLStore) EnsureProgress(ctx context.Context, userID, year string, now time.Time) (models.UserBingoProgress, error) {
	var p models.UserBingoProgress
	err := s.withinTx(ctx, func(tx *sql.Tx) error {
		if err := insertProgress(ctx, tx, userID, year, now); err != nil {
			return err
		}

		var err error
		p, err = getProgress(ctx, tx, userID, year)
		return err
	})
	return p, err
}

// UpsertMarkedCell inserts the cell or, when the (user, year, cell) row
// already exists, overwrites it. The insert decides which case applies, so
// two racing first marks of a cell see exactly one insert.
func (s *SQLStore) UpsertMarkedCell(ctx context.Context, userID, year string, cell models.MarkedCell) (models.UserBingoProgress, bool, error) {
	var p models.UserBingoProgress
	var replaced bool
	err := s.withinTx(ctx, func(tx *sql.Tx) error {
		if err := insertProgress(ctx, tx, userID, year, cell.MarkedAt); err != nil {
			return err
		}

		var agrupacionID sql.NullString
		if cell.AgrupacionID != nil {
			agrupacionID = sql.NullString{String: *cell.AgrupacionID, Valid: true}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO bingo_marked_cell (
				user_id, year, cell_id, agrupacion_id, agrupacion_name,
				agrupacion_tipo, pase, marked_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, year, cell_id) DO NOTHING
		`, userID, year, cell.CellID, agrupacionID, cell.AgrupacionName,
			cell.AgrupacionTipo, cell.Pase, cell.MarkedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert marked cell: %w", err)
		}

		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert marked cell: %w", err)
		}

		if inserted == 0 {
			replaced = true
			_, err := tx.ExecContext(ctx, `
				UPDATE bingo_marked_cell SET
					agrupacion_id = $1,
					agrupacion_name = $2,
					agrupacion_tipo = $3,
					pase = $4,
					marked_at = $5
				WHERE user_id = $6 AND year = $7 AND cell_id = $8
			`, agrupacionID, cell.AgrupacionName, cell.AgrupacionTipo, cell.Pase,
				cell.MarkedAt.UTC(), userID, year, cell.CellID)
			if err != nil {
				return fmt.Errorf("replace marked cell: %w", err)
			}
		}

		if err := touchProgress(ctx, tx, userID, year, cell.MarkedAt); err != nil {
			return err
		}

		p, err = getProgress(ctx, tx, userID, year)
		return err
	})
	return p, replaced, err
}

// MarkCompleted only writes when completed_at is unset and all cells are
// still marked at the time of the write.
func (s *SQLStore) MarkCompleted(ctx context.Context, userID, year string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bingo_progress SET completed_at = $1, updated_at = $1
		WHERE user_id = $2 AND year = $3 AND completed_at IS NULL
		  AND (
			SELECT COUNT(*) FROM bingo_marked_cell m
			WHERE m.user_id = $2 AND m.year = $3
		  ) = $4
	`, at.UTC(), userID, year, models.CellCount)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	return n == 1, nil
}

func (s *SQLStore) RemoveMarkedCell(ctx context.Context, userID, year string, cellID int, now time.Time) error {
	return s.withinTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM bingo_marked_cell
			WHERE user_id = $1 AND year = $2 AND cell_id = $3
		`, userID, year, cellID)
		if err != nil {
			return fmt.Errorf("delete marked cell: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE bingo_progress SET completed_at = NULL, updated_at = $1
			WHERE user_id = $2 AND year = $3
		`, now.UTC(), userID, year)
		if err != nil {
			return fmt.Errorf("clear completed_at: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) ResetProgress(ctx context.Context, userID, year string, now time.Time) error {
	return s.withinTx(ctx, func(tx *sql.Tx) error {
		if err := insertProgress(ctx, tx, userID, year, now); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			DELETE FROM bingo_marked_cell WHERE user_id = $1 AND year = $2
		`, userID, year)
		if err != nil {
			return fmt.Errorf("delete marked cells: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE bingo_progress SET completed_at = NULL, updated_at = $1
			WHERE user_id = $2 AND year = $3
		`, now.UTC(), userID, year)
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		return nil
	})
}

func insertProgress(ctx context.Context, tx *sql.Tx, userID, year string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO bingo_progress (user_id, year, completed_at, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $3)
		ON CONFLICT (user_id, year) DO NOTHING
	`, userID, year, now.UTC())
	if err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

func touchProgress(ctx context.Context, tx *sql.Tx, userID, year string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE bingo_progress SET updated_at = $1 WHERE user_id = $2 AND year = $3
	`, now.UTC(), userID, year)
	if err != nil {
		return fmt.Errorf("touch progress: %w", err)
	}
	return nil
}

func getTemplate(ctx context.Context, q querier, year string) (models.BingoTemplate, error) {
	tpl := models.BingoTemplate{Year: year}
	err := q.QueryRowContext(ctx, `
		SELECT created_at, updated_at FROM bingo_template WHERE year = $1
	`, year).Scan(&tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return models.BingoTemplate{}, fmt.Errorf("query template: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT cell_id, title, position
		FROM bingo_template_cell
		WHERE year = $1
		ORDER BY position
	`, year)
	if err != nil {
		return models.BingoTemplate{}, fmt.Errorf("query template cells: %w", err)
	}
	defer rows.Close()

	tpl.Cells = []models.TemplateCell{}
	for rows.Next() {
		var c models.TemplateCell
		if err := rows.Scan(&c.ID, &c.Title, &c.Position); err != nil {
			return models.BingoTemplate{}, fmt.Errorf("scan template cell: %w", err)
		}
		tpl.Cells = append(tpl.Cells, c)
	}
	if err := rows.Err(); err != nil {
		return models.BingoTemplate{}, fmt.Errorf("iterate template cells: %w", err)
	}

	return tpl, nil
}

func getProgress(ctx context.Context, q querier, userID, year string) (models.UserBingoProgress, error) {
	p := models.UserBingoProgress{UserID: userID, Year: year}
	var completedAt sql.NullTime
	err := q.QueryRowContext(ctx, `
		SELECT completed_at, created_at, updated_at
		FROM bingo_progress
		WHERE user_id = $1 AND year = $2
	`, userID, year).Scan(&completedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.UserBingoProgress{}, fmt.Errorf("query progress: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}

	rows, err := q.QueryContext(ctx, `
		SELECT cell_id, agrupacion_id, agrupacion_name, agrupacion_tipo, pase, marked_at
		FROM bingo_marked_cell
		WHERE user_id = $1 AND year = $2
		ORDER BY cell_id
	`, userID, year)
	if err != nil {
		return models.UserBingoProgress{}, fmt.Errorf("query marked cells: %w", err)
	}
	defer rows.Close()

	p.Cells = []models.MarkedCell{}
	for rows.Next() {
		var c models.MarkedCell
		var agrupacionID sql.NullString
		if err := rows.Scan(&c.CellID, &agrupacionID, &c.AgrupacionName, &c.AgrupacionTipo, &c.Pase, &c.MarkedAt); err != nil {
			return models.UserBingoProgress{}, fmt.Errorf("scan marked cell: %w", err)
		}
		if agrupacionID.Valid {
			id := agrupacionID.String
			c.AgrupacionID = &id
		}
		p.Cells = append(p.Cells, c)
	}
	if err := rows.Err(); err != nil {
		return models.UserBingoProgress{}, fmt.Errorf("iterate marked cells: %w", err)
	}

	return p, nil
}
