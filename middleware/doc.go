// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Assigns a request id (X-Request-ID, generated when absent) and logs
request start and completion.

# Identity

RequireIdentity validates the bearer token and stores the caller:

	mux.HandleFunc("GET /bingo/{year}/progress",
		middleware.WithLogging(middleware.RequireIdentity(secret, h.GetProgress)))

	caller, ok := middleware.IdentityFrom(r.Context())

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "message")
	middleware.FieldErrorResponse(w, http.StatusBadRequest, "pase", "message")

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}
*/
package middleware
