// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file, PostgreSQL DSN or MongoDB URI (required unless issuing a token)
  - DatabaseType: sqlite (default), postgres or mongo
  - MongoDatabase: database name when DatabaseType is mongo (default: carnaval)
  - TokenSecret: HMAC secret shared with the login system (required)
  - CatalogSeed: optional YAML file imported into the catalog at startup
  - ShutdownGrace: graceful shutdown timeout (default: 10s)
  - IssueToken: "user[:role]" to print a signed token and exit (-issue-token)
  - TokenTTL: lifetime of issued tokens (default: 24h)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	MONGO_DATABASE → -mongo-db
	CATALOG_SEED   → -seed
	TOKEN_SECRET   → -token-secret

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing, when one exists.
*/
package cliparse
