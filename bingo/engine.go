// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bingo

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

// Store is the persistence collaborator. Every method is a single-document
// operation from the engine's point of view.
type Store interface {
	// EnsureTemplate inserts defaults if the year has no template yet and
	// returns the stored template.
	EnsureTemplate(ctx context.Context, defaults models.BingoTemplate) (models.BingoTemplate, error)
	// SetCellTitle reports whether a cell matched.
	SetCellTitle(ctx context.Context, year string, cellID int, title string, now time.Time) (bool, error)

	// EnsureProgress creates an empty record if absent and returns the stored one.
	EnsureProgress(ctx context.Context, userID, year string, now time.Time) (models.UserBingoProgress, error)
	// UpsertMarkedCell replaces the cell with the same id in place or appends it,
	// creating the record if needed. It returns the record as written and
	// whether an existing cell was replaced, decided by the write itself.
	UpsertMarkedCell(ctx context.Context, userID, year string, cell models.MarkedCell) (models.UserBingoProgress, bool, error)
	// MarkCompleted sets completedAt only if it is unset and the record still
	// holds every cell. Reports whether the write happened.
	MarkCompleted(ctx context.Context, userID, year string, at time.Time) (bool, error)
	// RemoveMarkedCell removes the cell if present and clears completedAt either way.
	RemoveMarkedCell(ctx context.Context, userID, year string, cellID int, now time.Time) error
	// ResetProgress empties cells and clears completedAt, creating the record if needed.
	ResetProgress(ctx context.Context, userID, year string, now time.Time) error
}

// Engine implements the bingo progress operations on top of a Store.
type Engine struct {
	store Store
	now   func() time.Time
}

type Option func(*Engine)

// WithClock overrides the time source used for markedAt and completedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MarkInput carries the fields of a mark/update request.
type MarkInput struct {
	UserID         string
	Year           string
	CellID         int
	AgrupacionID   *string
	AgrupacionName string
	AgrupacionTipo string
	Pase           string
}

func (in MarkInput) validate() error {
	if err := validateKey(in.UserID, in.Year); err != nil {
		return err
	}
	if !ValidCellID(in.CellID) {
		return &ValidationError{Field: "cellId", Reason: "must be between 1 and " + strconv.Itoa(models.CellCount)}
	}
	if strings.TrimSpace(in.AgrupacionName) == "" {
		return &ValidationError{Field: "agrupacionName", Reason: "is required"}
	}
	if in.Pase == "" {
		return &ValidationError{Field: "pase", Reason: "is required"}
	}
	if !models.IsValidPase(in.Pase) {
		return &ValidationError{Field: "pase", Reason: "must be one of: " + strings.Join(models.Pases, ", ")}
	}
	return nil
}

// Template returns the year's template, creating it from defaults if absent.
func (e *Engine) Template(ctx context.Context, year string) (models.BingoTemplate, error) {
	if year == "" {
		return models.BingoTemplate{}, &ValidationError{Field: "year", Reason: "is required"}
	}
	tpl, err := e.store.EnsureTemplate(ctx, DefaultTemplate(year, e.now()))
	if err != nil {
		return models.BingoTemplate{}, storageErr("ensure template", err)
	}
	if len(tpl.Cells) == 0 {
		// a template row without cells cannot be repaired from here
		return models.BingoTemplate{}, &NotFoundError{Resource: "template", Key: year}
	}
	return tpl, nil
}

// Progress returns the caller's record for the year, creating an empty one
// if absent, together with its derived line status.
func (e *Engine) Progress(ctx context.Context, userID, year string) (models.ProgressResponse, error) {
	if err := validateKey(userID, year); err != nil {
		return models.ProgressResponse{}, err
	}
	p, err := e.store.EnsureProgress(ctx, userID, year, e.now())
	if err != nil {
		return models.ProgressResponse{}, storageErr("ensure progress", err)
	}
	normalize(&p)

	return models.ProgressResponse{
		Progress:    p,
		Lines:       CompleteLines(p.MarkedIDs()),
		TotalMarked: len(p.Cells),
		Completed:   p.CompletedAt != nil,
	}, nil
}

// MarkCell stores or replaces a marked cell and evaluates line and board completion.
func (e *Engine) MarkCell(ctx context.Context, in MarkInput) (models.MarkCellResponse, error) {
	if err := in.validate(); err != nil {
		return models.MarkCellResponse{}, err
	}

	now := e.now()
	if _, err := e.store.EnsureTemplate(ctx, DefaultTemplate(in.Year, now)); err != nil {
		return models.MarkCellResponse{}, storageErr("ensure template", err)
	}

	cell := models.MarkedCell{
		CellID:         in.CellID,
		AgrupacionID:   in.AgrupacionID,
		AgrupacionName: strings.TrimSpace(in.AgrupacionName),
		AgrupacionTipo: in.AgrupacionTipo,
		Pase:           in.Pase,
		MarkedAt:       now,
	}
	p, replaced, err := e.store.UpsertMarkedCell(ctx, in.UserID, in.Year, cell)
	if err != nil {
		return models.MarkCellResponse{}, storageErr("upsert cell", err)
	}
	normalize(&p)

	lines := CompleteLines(p.MarkedIDs())
	newLines := []models.Line{}
	if !replaced {
		newLines = LinesThrough(lines, in.CellID)
	}

	completedAt := p.CompletedAt
	if IsFull(len(p.Cells)) && completedAt == nil {
		ok, err := e.store.MarkCompleted(ctx, in.UserID, in.Year, now)
		if err != nil {
			return models.MarkCellResponse{}, storageErr("mark completed", err)
		}
		if ok {
			completedAt = &now
			slog.Info("bingo completed", "user_id", in.UserID, "year", in.Year)
		}
	}

	return models.MarkCellResponse{
		Cell:        cell,
		Lines:       lines,
		NewLines:    newLines,
		TotalMarked: len(p.Cells),
		Completed:   completedAt != nil,
		CompletedAt: completedAt,
	}, nil
}

// UnmarkCell removes the cell if present. completedAt is cleared even when
// nothing was removed.
func (e *Engine) UnmarkCell(ctx context.Context, userID, year string, cellID int) error {
	if err := validateKey(userID, year); err != nil {
		return err
	}
	if err := e.store.RemoveMarkedCell(ctx, userID, year, cellID, e.now()); err != nil {
		return storageErr("remove cell", err)
	}
	return nil
}

// Reset empties the caller's card for the year.
func (e *Engine) Reset(ctx context.Context, userID, year string) error {
	if err := validateKey(userID, year); err != nil {
		return err
	}
	if err := e.store.ResetProgress(ctx, userID, year, e.now()); err != nil {
		return storageErr("reset progress", err)
	}
	return nil
}

const opEditTitles = "edit bingo titles"

// RequireAdmin returns an AuthorizationError unless caller holds
// administrator capability.
func RequireAdmin(caller models.Identity, operation string) error {
	if !caller.IsAdmin() {
		return &AuthorizationError{UserID: caller.UserID, Operation: operation}
	}
	return nil
}

// CanEditTitles reports whether caller may use EditCellTitle.
func CanEditTitles(caller models.Identity) error {
	return RequireAdmin(caller, opEditTitles)
}

// EditCellTitle changes one title of the year's shared template. A cell id
// that matches nothing is not an error; the returned bool is false.
func (e *Engine) EditCellTitle(ctx context.Context, caller models.Identity, year string, cellID int, title string) (bool, error) {
	if err := RequireAdmin(caller, opEditTitles); err != nil {
		return false, err
	}
	if year == "" {
		return false, &ValidationError{Field: "year", Reason: "is required"}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return false, &ValidationError{Field: "title", Reason: "is required"}
	}

	now := e.now()
	if _, err := e.store.EnsureTemplate(ctx, DefaultTemplate(year, now)); err != nil {
		return false, storageErr("ensure template", err)
	}
	matched, err := e.store.SetCellTitle(ctx, year, cellID, title, now)
	if err != nil {
		return false, storageErr("set cell title", err)
	}
	if !matched {
		slog.Warn("bingo title edit matched no cell", "year", year, "cell_id", cellID)
	}
	return matched, nil
}

func validateKey(userID, year string) error {
	if userID == "" {
		return &ValidationError{Field: "userId", Reason: "is required"}
	}
	if year == "" {
		return &ValidationError{Field: "year", Reason: "is required"}
	}
	return nil
}

func normalize(p *models.UserBingoProgress) {
	if p.Cells == nil {
		p.Cells = []models.MarkedCell{}
	}
}
