// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger persists election events as an append-only chain-of-custody
log.

# Schema

One insert-only table:

	event(id, seq, kind, payload, recorded_at)

  - id: random UUID
  - seq: store-assigned, strictly increasing in commit order
  - kind: event kind string (voter_registered, stage_changed, ...)
  - payload: the event encoded as JSON
  - recorded_at: insertion time

The DDL works unchanged on SQLite (modernc.org/sqlite) and PostgreSQL
(lib/pq); the driver is chosen by server configuration.

# Usage

	db, _ := sql.Open("sqlite", dsn)
	ledger.CreateSchema(db)
	store, _ := ledger.NewStore(db)
	e, _ := election.New(admin, variant, store)

Store.Append satisfies election.Sink. Append failures are logged and
swallowed: the ledger observes the state machine, it never vetoes it.
*/
package ledger
