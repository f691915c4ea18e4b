// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/David01mc/CarnavalWEB-sub000/bingo"
	"github.com/David01mc/CarnavalWEB-sub000/catalog"
	"github.com/David01mc/CarnavalWEB-sub000/cliparse"
	"github.com/David01mc/CarnavalWEB-sub000/handlers"
	"github.com/David01mc/CarnavalWEB-sub000/middleware"
)

// Store is satisfied by both db.SQLStore and db.MongoStore.
type Store interface {
	bingo.Store
	catalog.Store
}

func NewRouter(store Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	bingoHandler := handlers.NewBingoHandler(bingo.NewEngine(store))
	catalogHandler := handlers.NewCatalogHandler(catalog.NewService(store))

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireIdentity(cfg.TokenSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Bingo template (shared per year)
	mux.HandleFunc("GET /bingo/{year}/template", middleware.WithLogging(bingoHandler.GetTemplate))
	mux.HandleFunc("PUT /bingo/{year}/template/cells/{cellId}", authed(bingoHandler.EditCellTitle))

	// Bingo progress (caller's own card)
	mux.HandleFunc("GET /bingo/{year}/progress", authed(bingoHandler.GetProgress))
	mux.HandleFunc("PUT /bingo/{year}/progress/cells/{cellId}", authed(bingoHandler.MarkCell))
	mux.HandleFunc("DELETE /bingo/{year}/progress/cells/{cellId}", authed(bingoHandler.UnmarkCell))
	mux.HandleFunc("POST /bingo/{year}/progress/reset", authed(bingoHandler.ResetProgress))

	// Catalog lookup (public)
	mux.HandleFunc("GET /agrupaciones/search", middleware.WithLogging(catalogHandler.Search))
	mux.HandleFunc("GET /agrupaciones/featured", middleware.WithLogging(catalogHandler.Featured))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("carnaval-bingo API v1"))
	})

	return mux
}
