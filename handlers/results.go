// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/dustin/go-humanize"
)

// GetStatus handles GET /election
func (s *Service) GetStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionStatusResponse{
		ElectionID:      s.id,
		Variant:         s.elect.Variant().String(),
		Stage:           s.elect.Stage(),
		VoterCount:      s.elect.VoterCount(),
		ProposalCount:   s.elect.ProposalCount(),
		BallotCount:     s.elect.BallotCount(),
		BlankCount:      s.elect.BlankCount(),
		ForceCloseArmed: s.elect.ForceCloseArmed(),
		CreatedAt:       s.elect.CreatedAt(),
		Created:         humanize.Time(s.elect.CreatedAt()),
	})
}

// GetWinner handles GET /election/winner
//
// Results are public once tallied; before that the endpoint conflicts like
// any other out-of-order operation.
func (s *Service) GetWinner(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return
	}

	winner, err := s.elect.Winner()
	if err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Results are not tallied yet")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ProposalID:  winner.ID,
		Description: winner.Description,
		Votes:       winner.Votes,
	})
}

// ListProposals handles GET /election/proposals
func (s *Service) ListProposals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.requireVoter(w, r)
	if !ok {
		return
	}

	proposals, err := s.elect.Proposals(address)
	if err != nil {
		electionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposals)
}

// ListVotes handles GET /election/votes
func (s *Service) ListVotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.requireVoter(w, r)
	if !ok {
		return
	}

	votes, err := s.elect.Votes(address)
	if err != nil {
		electionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// GetVoter handles GET /election/voters/{address}
func (s *Service) GetVoter(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return
	}

	address := r.PathValue("address")
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}

	voter, err := s.elect.Voter(address)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}

// GetProposal handles GET /election/proposals/{id}
func (s *Service) GetProposal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}

	proposal, err := s.elect.Proposal(uint32(id))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposal)
}

// GetEvents handles GET /election/events
//
// The ledger is visible to the administrator and to registered voters.
// Accepts ?limit= to cap the number of entries returned.
func (s *Service) GetEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return
	}

	if auth.ValidateAdminKey(s.id, r.Header.Get("X-Admin-Key"), s.cfg.AdminKeySalt) != nil {
		address := r.Header.Get("X-Voter-Address")
		voter, err := s.elect.Voter(address)
		if err != nil || !voter.Registered {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Admin key or registered voter address required")
			return
		}
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	entries, err := s.store.List(limit)
	if err != nil {
		slog.Error("failed to list ledger entries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
