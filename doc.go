// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotbox API server.

Ballotbox runs a single-election voting workflow: an administrator
registers voters, opens a proposal window, opens a voting window, and
tallies a winner. The server supports two rule sets, strict and extended,
selected at startup; see package election for the exact semantics.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:ballotbox.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d "file:ballotbox.db" -admin-salt "..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): ledger database DSN
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ELECTION_VARIANT (--variant): strict or extended (default: extended)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: the workflow state machine, free of HTTP and SQL
  - ledger: SQL-backed append-only event log
  - handlers: HTTP request handlers over one shared election
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Key generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
