// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/David01mc/CarnavalWEB-sub000/auth"
	"github.com/David01mc/CarnavalWEB-sub000/models"
)

type seedFile struct {
	Agrupaciones []seedEntry `yaml:"agrupaciones"`
}

type seedEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Tipo string `yaml:"tipo"`
	Year string `yaml:"year"`
}

// LoadSeed decodes a YAML catalog. Entries without an id get a random one.
func LoadSeed(r io.Reader) ([]models.Agrupacion, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	list := make([]models.Agrupacion, 0, len(f.Agrupaciones))
	for i, e := range f.Agrupaciones {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			var err error
			if id, err = auth.GenerateID(8); err != nil {
				return nil, err
			}
		}
		list = append(list, models.Agrupacion{
			ID:   id,
			Name: name,
			Tipo: strings.TrimSpace(e.Tipo),
			Year: strings.TrimSpace(e.Year),
		})
	}
	return list, nil
}

// Import upserts every entry and returns how many were written.
func (s *Service) Import(ctx context.Context, list []models.Agrupacion) (int, error) {
	for i, a := range list {
		if err := s.store.UpsertAgrupacion(ctx, a); err != nil {
			return i, err
		}
	}
	return len(list), nil
}

// ImportFile loads and imports a YAML seed from path.
func (s *Service) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	list, err := LoadSeed(f)
	if err != nil {
		return 0, err
	}
	return s.Import(ctx, list)
}
