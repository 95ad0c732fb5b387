// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// InitElection handles POST /election
func (s *Service) InitElection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.elect != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Election already initialized")
		return
	}

	electionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate election ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to initialize election")
		return
	}
	adminKey := auth.GenerateAdminKey(electionID, s.cfg.AdminKeySalt)

	s.id = electionID
	elect, err := election.New(s.adminAddress(), s.variant(), s.store)
	if err != nil {
		s.id = ""
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to initialize election")
		return
	}
	s.elect = elect

	slog.Info("election initialized", "election_id", electionID, "variant", s.cfg.Variant)

	middleware.JSONResponse(w, http.StatusCreated, models.InitElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
		Variant:    s.cfg.Variant,
	})
}

// RegisterVoter handles POST /election/voters
func (s *Service) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}

	if err := s.elect.RegisterVoter(s.adminAddress(), req.Address); err != nil {
		electionError(w, err)
		return
	}

	slog.Info("voter registered", "election_id", s.id, "address", req.Address)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVotersResponse{
		VoterCount: s.elect.VoterCount(),
	})
}

// RegisterVoters handles POST /election/voters/batch
func (s *Service) RegisterVoters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	var req models.RegisterVotersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Addresses) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "addresses is required")
		return
	}

	if err := s.elect.RegisterVoters(s.adminAddress(), req.Addresses); err != nil {
		electionError(w, err)
		return
	}

	slog.Info("voters registered", "election_id", s.id, "batch_size", len(req.Addresses), "voter_count", s.elect.VoterCount())

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVotersResponse{
		VoterCount: s.elect.VoterCount(),
	})
}

// OpenProposals handles POST /election/proposals/open
func (s *Service) OpenProposals(w http.ResponseWriter, r *http.Request) {
	s.stageTransition(w, r, "proposals opened", func() error {
		return s.elect.OpenProposals(s.adminAddress())
	})
}

// CloseProposals handles POST /election/proposals/close
func (s *Service) CloseProposals(w http.ResponseWriter, r *http.Request) {
	s.stageTransition(w, r, "proposals closed", func() error {
		return s.elect.CloseProposals(s.adminAddress())
	})
}

// OpenVoting handles POST /election/voting/open
func (s *Service) OpenVoting(w http.ResponseWriter, r *http.Request) {
	s.stageTransition(w, r, "voting opened", func() error {
		return s.elect.OpenVoting(s.adminAddress())
	})
}

// Tally handles POST /election/tally
func (s *Service) Tally(w http.ResponseWriter, r *http.Request) {
	s.stageTransition(w, r, "results tallied", func() error {
		return s.elect.Tally(s.adminAddress())
	})
}

// stageTransition runs one admin-only transition and reports the resulting
// stage. Locking, auth and error mapping are identical for all four simple
// transitions.
func (s *Service) stageTransition(w http.ResponseWriter, r *http.Request, msg string, op func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	if err := op(); err != nil {
		electionError(w, err)
		return
	}

	slog.Info(msg, "election_id", s.id, "stage", s.elect.Stage().String())

	middleware.JSONResponse(w, http.StatusOK, models.StageResponse{Stage: s.elect.Stage()})
}

// CloseVoting handles POST /election/voting/close
//
// Under the extended rules a close with incomplete turnout is not an error:
// the election stays open, the response reports the missing-ballot count,
// and force close becomes available.
func (s *Service) CloseVoting(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	missing, err := s.elect.CloseVoting(s.adminAddress())
	if err != nil {
		electionError(w, err)
		return
	}

	slog.Info("voting close requested",
		"election_id", s.id,
		"stage", s.elect.Stage().String(),
		"missing_ballots", missing,
	)

	middleware.JSONResponse(w, http.StatusOK, models.CloseVotingResponse{
		Stage:           s.elect.Stage(),
		Tallied:         s.elect.Stage() == election.ResultsTallied,
		MissingBallots:  missing,
		ForceCloseArmed: s.elect.ForceCloseArmed(),
	})
}

// ForceCloseVoting handles POST /election/voting/force-close
func (s *Service) ForceCloseVoting(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	if err := s.elect.ForceCloseVoting(s.adminAddress()); err != nil {
		electionError(w, err)
		return
	}

	slog.Info("voting force closed",
		"election_id", s.id,
		"ballots", s.elect.BallotCount(),
		"voters", s.elect.VoterCount(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.CloseVotingResponse{
		Stage:           s.elect.Stage(),
		Tallied:         true,
		MissingBallots:  s.elect.VoterCount() - s.elect.BallotCount(),
		ForceCloseArmed: false,
	})
}
