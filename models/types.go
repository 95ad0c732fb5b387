// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/ballotbox/election"
)

// Variant constants (configuration values)
const (
	VariantStrict   = "strict"
	VariantExtended = "extended"
)

// Request types

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type RegisterVotersRequest struct {
	Addresses []string `json:"addresses"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	ProposalID uint32 `json:"proposal_id"`
}

// Response types

type InitElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
	Variant    string `json:"variant"`
}

type ElectionStatusResponse struct {
	ElectionID      string         `json:"election_id"`
	Variant         string         `json:"variant"`
	Stage           election.Stage `json:"stage"`
	VoterCount      int            `json:"voter_count"`
	ProposalCount   int            `json:"proposal_count"`
	BallotCount     int            `json:"ballot_count"`
	BlankCount      int            `json:"blank_count,omitempty"`
	ForceCloseArmed bool           `json:"force_close_armed"`
	CreatedAt       time.Time      `json:"created_at"`
	Created         string         `json:"created"` // human-readable age
}

type RegisterVotersResponse struct {
	VoterCount int `json:"voter_count"`
}

type StageResponse struct {
	Stage election.Stage `json:"stage"`
}

type SubmitProposalResponse struct {
	ProposalID uint32 `json:"proposal_id"`
}

type CastVoteResponse struct {
	Address    string `json:"address"`
	ProposalID uint32 `json:"proposal_id"`
}

type CloseVotingResponse struct {
	Stage           election.Stage `json:"stage"`
	Tallied         bool           `json:"tallied"`
	MissingBallots  int            `json:"missing_ballots"`
	ForceCloseArmed bool           `json:"force_close_armed"`
}

type WinnerResponse struct {
	ProposalID  uint32 `json:"proposal_id"`
	Description string `json:"description"`
	Votes       uint32 `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
