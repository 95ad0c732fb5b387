// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/ledger"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// Service holds the single election this server runs, plus its ledger and
// config. The election core assumes one logical writer, so every handler
// takes the mutex for the duration of the request.
type Service struct {
	mu    sync.Mutex
	cfg   cliparse.Config
	store *ledger.Store

	id    string // set by InitElection
	elect *election.Election
}

func NewService(store *ledger.Store, cfg cliparse.Config) *Service {
	return &Service{cfg: cfg, store: store}
}

// adminAddress is the administrator's identity inside the election core.
// The random election ID keeps it from colliding with any voter address.
func (s *Service) adminAddress() string {
	return "admin:" + s.id
}

func (s *Service) variant() election.Variant {
	if s.cfg.Variant == models.VariantStrict {
		return election.Strict
	}
	return election.Extended
}

// requireAdmin validates the X-Admin-Key header against the election ID.
// Callers must hold s.mu.
func (s *Service) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return false
	}
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(s.id, adminKey, s.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// requireVoter extracts the verified caller address from X-Voter-Address.
// Callers must hold s.mu. The address's registration status is checked by
// the election core, not here.
func (s *Service) requireVoter(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.elect == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No election initialized")
		return "", false
	}
	address := r.Header.Get("X-Voter-Address")
	if address == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Address header is required")
		return "", false
	}
	return address, true
}

// electionError maps core errors onto HTTP responses.
func electionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, election.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Caller is not authorized for this operation")
	case errors.Is(err, election.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, election.ErrWrongStage):
		middleware.ErrorResponse(w, http.StatusConflict, "Operation not valid in the current stage")
	case errors.Is(err, election.ErrAlreadyRegistered):
		middleware.ErrorResponse(w, http.StatusConflict, "Address already registered")
	case errors.Is(err, election.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Caller has already voted")
	case errors.Is(err, election.ErrForceCloseLocked):
		middleware.ErrorResponse(w, http.StatusConflict, "Force close requires a failed regular close first")
	case errors.Is(err, election.ErrNoVoters):
		middleware.ErrorResponse(w, http.StatusConflict, "No voters registered")
	case errors.Is(err, election.ErrNoProposals):
		middleware.ErrorResponse(w, http.StatusConflict, "No proposals submitted")
	default:
		// ErrInvalidAddress, ErrInvalidProposal, ErrEmptyDescription
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	}
}
