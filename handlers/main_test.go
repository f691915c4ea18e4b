// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/goleak"

	"github.com/David01mc/CarnavalWEB-sub000/bingo"
	"github.com/David01mc/CarnavalWEB-sub000/catalog"
	"github.com/David01mc/CarnavalWEB-sub000/db"
	"github.com/David01mc/CarnavalWEB-sub000/middleware"
	"github.com/David01mc/CarnavalWEB-sub000/models"
	"github.com/David01mc/CarnavalWEB-sub000/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

var (
	ana   = models.Identity{UserID: "ana", Role: models.RoleUser}
	admin = models.Identity{UserID: "root", Role: models.RoleAdmin}
)

func setupHandlers(t *testing.T) (*BingoHandler, *CatalogHandler, *db.SQLStore) {
	t.Helper()
	store := testutil.SetupTestStore(t)
	return NewBingoHandler(bingo.NewEngine(store)), NewCatalogHandler(catalog.NewService(store)), store
}

// serve calls h directly, filling the path values the mux would set and the
// identity RequireIdentity would attach.
func serve(h http.HandlerFunc, method, target string, body interface{}, caller *models.Identity, params map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, target, body, nil)
	for k, v := range params {
		req.SetPathValue(k, v)
	}
	if caller != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *caller))
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func cellParams(year, cellID string) map[string]string {
	return map[string]string{"year": year, "cellId": cellID}
}
