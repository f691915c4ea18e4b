// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists bingo templates, per-user progress and the agrupación
catalog.

# Backends

SQLStore works on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite). The
SQL is shared; placeholders are numbered in order of appearance so both
drivers bind them the same way.

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}
	store := db.NewSQLStore(conn)

MongoStore keeps one document per template and per progress record:

	client, err := db.ConnectMongo(ctx, uri)
	store := db.NewMongoStore(client.Database("carnaval"))
	err = store.EnsureIndexes(ctx)

# Tables

	bingo_template 1──* bingo_template_cell
	bingo_progress 1──* bingo_marked_cell
	agrupacion

A progress row is keyed by (user_id, year) and a marked cell by
(user_id, year, cell_id), so a cell can appear at most once per card.

# Completion

MarkCompleted is a conditional write. It succeeds only while completed_at
is unset and every cell is still marked, so an unmark racing a completion
cannot leave a completion timestamp on a partial card.
*/
package db
