// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Logging

WithLogging wraps a handler with structured request/completion logging:

	mux.HandleFunc("POST /election", middleware.WithLogging(h.InitElection))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open")
	middleware.ParseJSONBody(r, &req)

ErrorResponse renders the models.ErrorResponse shape with the standard
status text as the error field.

# CORS

CORS allows cross-origin requests and answers preflight OPTIONS requests,
including the X-Admin-Key and X-Voter-Address headers the API uses.
*/
package middleware
