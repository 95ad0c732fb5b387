// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// SubmitProposal handles POST /election/proposals
func (s *Service) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.requireVoter(w, r)
	if !ok {
		return
	}

	var req models.SubmitProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	id, err := s.elect.SubmitProposal(address, req.Description)
	if err != nil {
		electionError(w, err)
		return
	}

	slog.Info("proposal submitted", "election_id", s.id, "proposal_id", id, "address", address)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitProposalResponse{
		ProposalID: id,
	})
}

// CastVote handles POST /election/votes
//
// The extended rules accept proposal_id 0 as an explicit blank ballot, so a
// request body that omits the field casts a blank vote under those rules and
// is rejected by the core under the strict ones.
func (s *Service) CastVote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.requireVoter(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.elect.CastVote(address, req.ProposalID); err != nil {
		electionError(w, err)
		return
	}

	slog.Info("vote cast",
		"election_id", s.id,
		"address", address,
		"blank", req.ProposalID == election.BlankBallot,
		"ballots", s.elect.BallotCount(),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Address:    address,
		ProposalID: req.ProposalID,
	})
}
