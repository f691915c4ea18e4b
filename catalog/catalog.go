// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// Search limits
const (
	MinQueryLength  = 2
	FilteredLimit   = 15
	UnfilteredLimit = 30
)

var ErrEmptyCatalog = errors.New("catalog is empty")

type Store interface {
	ListAgrupaciones(ctx context.Context) ([]models.Agrupacion, error)
	UpsertAgrupacion(ctx context.Context, a models.Agrupacion) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Search returns agrupaciones whose name contains query, ignoring case and
// accents. Queries shorter than MinQueryLength return the unfiltered list.
// Results are deduplicated by name and sorted with Spanish collation.
func (s *Service) Search(ctx context.Context, query string) ([]models.Agrupacion, error) {
	all, err := s.store.ListAgrupaciones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agrupaciones: %w", err)
	}

	query = strings.TrimSpace(query)
	limit := UnfilteredLimit
	var needle string
	if utf8.RuneCountInString(query) >= MinQueryLength {
		limit = FilteredLimit
		needle = Fold(query)
	}

	seen := make(map[string]bool)
	results := []models.Agrupacion{}
	for _, a := range all {
		key := Fold(a.Name)
		if needle != "" && !strings.Contains(key, needle) {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, a)
	}

	SortByName(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Featured picks the agrupación of the day. The pick is stable for a UTC
// calendar day and rotates through the catalog ordered by id.
func (s *Service) Featured(ctx context.Context, day time.Time) (models.Agrupacion, error) {
	all, err := s.store.ListAgrupaciones(ctx)
	if err != nil {
		return models.Agrupacion{}, fmt.Errorf("list agrupaciones: %w", err)
	}
	if len(all) == 0 {
		return models.Agrupacion{}, ErrEmptyCatalog
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all[FeaturedIndex(day, len(all))], nil
}

// FeaturedIndex maps a day onto [0, n).
func FeaturedIndex(day time.Time, n int) int {
	y, m, d := day.UTC().Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	idx := int(days % int64(n))
	if idx < 0 {
		idx += n
	}
	return idx
}

// Fold lower-cases s and strips diacritics so "Cuplé" matches "cuple".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// SortByName orders agrupaciones alphabetically using Spanish collation.
func SortByName(list []models.Agrupacion) {
	c := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}
