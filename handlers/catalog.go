// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/David01mc/CarnavalWEB-sub000/catalog"
	"github.com/David01mc/CarnavalWEB-sub000/middleware"
)

type CatalogHandler struct {
	catalog *catalog.Service
	now     func() time.Time
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc, now: time.Now}
}

// Search handles GET /agrupaciones/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("failed to search catalog", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Featured handles GET /agrupaciones/featured
// Returns the agrupación of the day
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	a, err := h.catalog.Featured(r.Context(), h.now())
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Catalog is empty")
		return
	}
	if err != nil {
		slog.Error("failed to pick featured agrupacion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, a)
}
