// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// ListAgrupaciones returns the whole catalog ordered by id.
func (s *SQLStore) ListAgrupaciones(ctx context.Context) ([]models.Agrupacion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tipo, year FROM agrupacion ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query agrupaciones: %w", err)
	}
	defer rows.Close()

	list := []models.Agrupacion{}
	for rows.Next() {
		var a models.Agrupacion
		if err := rows.Scan(&a.ID, &a.Name, &a.Tipo, &a.Year); err != nil {
			return nil, fmt.Errorf("scan agrupacion: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agrupaciones: %w", err)
	}

	return list, nil
}

func (s *SQLStore) UpsertAgrupacion(ctx context.Context, a models.Agrupacion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agrupacion (id, name, tipo, year)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			tipo = EXCLUDED.tipo,
			year = EXCLUDED.year
	`, a.ID, a.Name, a.Tipo, a.Year)
	if err != nil {
		return fmt.Errorf("upsert agrupacion %s: %w", a.ID, err)
	}
	return nil
}
