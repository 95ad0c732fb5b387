// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

NewRouter builds a ServeMux using Go 1.22 method-and-pattern routing and
wraps every API route with request logging. It constructs the single
handlers.Service that owns the election, so one router means one election.

See package handlers for the route list and authentication rules.
*/
package router
