// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/ledger"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(store *ledger.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	svc := handlers.NewService(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election lifecycle (admin operations)
	mux.HandleFunc("POST /election", middleware.WithLogging(svc.InitElection))
	mux.HandleFunc("POST /election/voters", middleware.WithLogging(svc.RegisterVoter))
	mux.HandleFunc("POST /election/voters/batch", middleware.WithLogging(svc.RegisterVoters))
	mux.HandleFunc("POST /election/proposals/open", middleware.WithLogging(svc.OpenProposals))
	mux.HandleFunc("POST /election/proposals/close", middleware.WithLogging(svc.CloseProposals))
	mux.HandleFunc("POST /election/voting/open", middleware.WithLogging(svc.OpenVoting))
	mux.HandleFunc("POST /election/voting/close", middleware.WithLogging(svc.CloseVoting))
	mux.HandleFunc("POST /election/voting/force-close", middleware.WithLogging(svc.ForceCloseVoting))
	mux.HandleFunc("POST /election/tally", middleware.WithLogging(svc.Tally))

	// Voter operations
	mux.HandleFunc("POST /election/proposals", middleware.WithLogging(svc.SubmitProposal))
	mux.HandleFunc("POST /election/votes", middleware.WithLogging(svc.CastVote))

	// Projections
	mux.HandleFunc("GET /election", middleware.WithLogging(svc.GetStatus))
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(svc.GetWinner))
	mux.HandleFunc("GET /election/proposals", middleware.WithLogging(svc.ListProposals))
	mux.HandleFunc("GET /election/proposals/{id}", middleware.WithLogging(svc.GetProposal))
	mux.HandleFunc("GET /election/votes", middleware.WithLogging(svc.ListVotes))
	mux.HandleFunc("GET /election/voters/{address}", middleware.WithLogging(svc.GetVoter))
	mux.HandleFunc("GET /election/events", middleware.WithLogging(svc.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
