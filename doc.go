// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the carnival bingo API server.

Each user keeps one 5x5 bingo card per carnival year. A cell is marked by
naming the agrupación seen performing and the pase it performed. The
server reports completed lines as cells are marked and records when the
whole card is filled.

# Starting the Server

	DATABASE_URL=bingo.db TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-secret ...

A .env file in the working directory is loaded first, if present.

# Issuing Tokens

Requests authenticate with a bearer token signed with TOKEN_SECRET. To
mint one for a user (role defaults to user) and exit without serving:

	TOKEN_SECRET=... go run . -issue-token ana
	TOKEN_SECRET=... go run . -issue-token root:admin -token-ttl 8h

# Storage

  - sqlite (default): DATABASE_URL is a file path or URI
  - postgres: DATABASE_URL is a lib/pq DSN
  - mongo: DATABASE_URL is a MongoDB URI, MONGO_DATABASE names the database

SQL backends create their schema on startup. MongoDB gets its unique
indexes instead.

# Shutdown

SIGINT and SIGTERM drain in-flight requests for up to -grace before the
process exits.
*/
package main
