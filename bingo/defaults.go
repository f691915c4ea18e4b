// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaultTitles = mustLoadDefaultTitles(defaultsYAML)

type defaultsFile struct {
	Titles []string `yaml:"titles"`
}

func mustLoadDefaultTitles(data []byte) []string {
	titles, err := parseDefaultTitles(data)
	if err != nil {
		panic(err)
	}
	return titles
}

func parseDefaultTitles(data []byte) ([]string, error) {
	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode default titles: %w", err)
	}
	if len(f.Titles) != models.CellCount {
		return nil, fmt.Errorf("default titles: want %d, got %d", models.CellCount, len(f.Titles))
	}
	return f.Titles, nil
}

// DefaultTemplate builds the template a year starts with.
func DefaultTemplate(year string, now time.Time) models.BingoTemplate {
	cells := make([]models.TemplateCell, models.CellCount)
	for i := range cells {
		cells[i] = models.TemplateCell{
			ID:       i + 1,
			Title:    defaultTitles[i],
			Position: i,
		}
	}
	return models.BingoTemplate{
		Year:      year,
		Cells:     cells,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
