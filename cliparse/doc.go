// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: ledger database DSN (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - Variant: election rule set, strict or extended (default: extended)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--variant     Election rule set
	--admin-salt  Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	ELECTION_VARIANT → --variant
	ADMIN_KEY_SALT   → --admin-salt

CLI flags take precedence over environment variables. main loads a .env
file first (godotenv), so a local dev setup needs no exported variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ELECTION_VARIANT must be strict or extended
  - ADMIN_KEY_SALT must be provided
*/
package cliparse
