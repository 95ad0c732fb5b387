// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: address
  - RegisterVotersRequest: addresses
  - SubmitProposalRequest: description
  - CastVoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - InitElectionResponse: election_id, admin_key, variant
  - ElectionStatusResponse: stage and counters
  - RegisterVotersResponse: voter_count
  - StageResponse: stage
  - SubmitProposalResponse: proposal_id
  - CastVoteResponse: address, proposal_id
  - CloseVotingResponse: stage, tallied, missing_ballots, force_close_armed
  - WinnerResponse: proposal_id, description, votes
  - ErrorResponse: error, message

Voter, proposal, vote-record and ledger-entry bodies reuse the structured
records from the election and ledger packages directly; this package only
adds the shapes the HTTP surface needs on top of them.

# Constants

Variant values:

	VariantStrict   = "strict"
	VariantExtended = "extended"
*/
package models
