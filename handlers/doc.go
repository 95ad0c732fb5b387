// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API over the election state machine.

# Service

All handlers hang off a single Service, which owns the one election this
server runs, the ledger store behind it, and a mutex that serializes every
request. The election core does no locking of its own.

# Endpoints

Admin lifecycle (POST, X-Admin-Key):

	/election                     initialize the election
	/election/voters              register one voter
	/election/voters/batch        register a batch of voters
	/election/proposals/open      open the proposal window
	/election/proposals/close     close the proposal window
	/election/voting/open         open the voting window
	/election/voting/close        close the voting window
	/election/voting/force-close  close despite incomplete turnout
	/election/tally               tally (strict rules only)

Voter operations (POST, X-Voter-Address):

	/election/proposals           submit a proposal
	/election/votes               cast a ballot

Projections (GET):

	/election                     status (public)
	/election/winner              winner, once tallied (public)
	/election/voters/{address}    one voter record (public)
	/election/proposals/{id}      one proposal (public)
	/election/proposals           all proposals (registered voters)
	/election/votes               who voted for what (registered voters)
	/election/events              the event ledger (admin or registered voter)

# Authentication

Admin calls carry the X-Admin-Key issued at initialization, validated by
HMAC against the election ID. Voter calls carry X-Voter-Address, the
caller identity assumed to be verified by the deployment's fronting layer;
the election core then enforces registration.

# Errors

Core errors map onto status codes in one place (electionError): 401 for
unauthorized callers, 404 for missing records, 409 for stage conflicts and
duplicate actions, 400 for malformed input.
*/
package handlers
