// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the bingo API.

	mux := router.NewRouter(store, cfg)

Public:

	GET /health
	GET /bingo/{year}/template
	GET /agrupaciones/search?q=
	GET /agrupaciones/featured

Bearer token required:

	PUT    /bingo/{year}/template/cells/{cellId}  - Edit title (admin)
	GET    /bingo/{year}/progress                 - Caller's card
	PUT    /bingo/{year}/progress/cells/{cellId}  - Mark or replace a cell
	DELETE /bingo/{year}/progress/cells/{cellId}  - Unmark a cell
	POST   /bingo/{year}/progress/reset           - Clear the card
*/
package router
