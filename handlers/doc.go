// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the bingo API.

  - BingoHandler: template, progress, mark, unmark, reset, title edit
  - CatalogHandler: agrupación search and the featured pick of the day

Handlers read the caller from the request context (see
middleware.RequireIdentity) and never trust ids from the body.

# Errors

Engine errors map onto statuses:

	*bingo.ValidationError    → 400, with the offending field
	*bingo.AuthorizationError → 403
	bingo.ErrNotFound         → 404
	*bingo.StorageError       → 500
*/
package handlers
