// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/David01mc/CarnavalWEB-sub000/bingo"
	"github.com/David01mc/CarnavalWEB-sub000/middleware"
	"github.com/David01mc/CarnavalWEB-sub000/models"
)

type BingoHandler struct {
	engine *bingo.Engine
}

func NewBingoHandler(engine *bingo.Engine) *BingoHandler {
	return &BingoHandler{engine: engine}
}

// GetTemplate handles GET /bingo/{year}/template
func (h *BingoHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.engine.Template(r.Context(), r.PathValue("year"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tpl)
}

// EditCellTitle handles PUT /bingo/{year}/template/cells/{cellId}
// Admin only; a cell id that matches nothing is acknowledged with updated=false.
func (h *BingoHandler) EditCellTitle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Permission is decided before any input is looked at
	if err := bingo.CanEditTitles(caller); err != nil {
		writeEngineError(w, r, err)
		return
	}

	cellID, ok := parseCellID(w, r)
	if !ok {
		return
	}

	var req models.EditCellTitleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	year := r.PathValue("year")
	updated, err := h.engine.EditCellTitle(r.Context(), caller, year, cellID, req.Title)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	slog.Info("bingo title edited", "year", year, "cell_id", cellID, "updated", updated, "by", caller.UserID)

	message := "Title updated"
	if !updated {
		message = "No cell matched"
	}
	middleware.JSONResponse(w, http.StatusOK, models.EditCellTitleResponse{
		Updated: updated,
		Message: message,
	})
}

// GetProgress handles GET /bingo/{year}/progress
func (h *BingoHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	progress, err := h.engine.Progress(r.Context(), caller.UserID, r.PathValue("year"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, progress)
}

// MarkCell handles PUT /bingo/{year}/progress/cells/{cellId}
// Creates or replaces the caller's entry for the cell.
func (h *BingoHandler) MarkCell(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	cellID, ok := parseCellID(w, r)
	if !ok {
		return
	}

	var req models.MarkCellRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	year := r.PathValue("year")
	resp, err := h.engine.MarkCell(r.Context(), bingo.MarkInput{
		UserID:         caller.UserID,
		Year:           year,
		CellID:         cellID,
		AgrupacionID:   req.AgrupacionID,
		AgrupacionName: req.AgrupacionName,
		AgrupacionTipo: req.AgrupacionTipo,
		Pase:           req.Pase,
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	slog.Info("bingo cell marked",
		"user_id", caller.UserID,
		"year", year,
		"cell_id", cellID,
		"total_marked", resp.TotalMarked,
		"new_lines", len(resp.NewLines),
	)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UnmarkCell handles DELETE /bingo/{year}/progress/cells/{cellId}
func (h *BingoHandler) UnmarkCell(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	cellID, ok := parseCellID(w, r)
	if !ok {
		return
	}

	year := r.PathValue("year")
	if err := h.engine.UnmarkCell(r.Context(), caller.UserID, year, cellID); err != nil {
		writeEngineError(w, r, err)
		return
	}

	slog.Info("bingo cell unmarked", "user_id", caller.UserID, "year", year, "cell_id", cellID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Cell unmarked"})
}

// ResetProgress handles POST /bingo/{year}/progress/reset
func (h *BingoHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	year := r.PathValue("year")
	if err := h.engine.Reset(r.Context(), caller.UserID, year); err != nil {
		writeEngineError(w, r, err)
		return
	}

	slog.Info("bingo progress reset", "user_id", caller.UserID, "year", year)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Progress reset"})
}

func parseCellID(w http.ResponseWriter, r *http.Request) (int, bool) {
	cellID, err := strconv.Atoi(r.PathValue("cellId"))
	if err != nil {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "cellId", "cellId must be an integer")
		return 0, false
	}
	return cellID, true
}

// writeEngineError maps the engine's error kinds onto status codes.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *bingo.ValidationError
	var authzErr *bingo.AuthorizationError
	var storageErr *bingo.StorageError

	switch {
	case errors.As(err, &validationErr):
		middleware.FieldErrorResponse(w, http.StatusBadRequest, validationErr.Field, validationErr.Error())
	case errors.As(err, &authzErr):
		middleware.ErrorResponse(w, http.StatusForbidden, "Administrator capability required")
	case errors.Is(err, bingo.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &storageErr):
		slog.Error("storage failure", "error", err, "path", r.URL.Path, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	default:
		slog.Error("unexpected error", "error", err, "path", r.URL.Path, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
