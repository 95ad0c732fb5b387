// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Every failure is a well-typed rejection; no operation mutates state on error.
var (
	ErrUnauthorized      = errors.New("caller is not permitted to perform this operation")
	ErrWrongStage        = errors.New("operation is not valid in the current stage")
	ErrInvalidAddress    = errors.New("voter address is empty")
	ErrAlreadyRegistered = errors.New("voter is already registered")
	ErrNotFound          = errors.New("no record for that address or id")
	ErrInvalidProposal   = errors.New("proposal id is out of range")
	ErrAlreadyVoted      = errors.New("voter has already cast a ballot")
	ErrEmptyDescription  = errors.New("proposal description is empty")
	ErrNoVoters          = errors.New("no voters are registered")
	ErrNoProposals       = errors.New("no proposals were submitted")
	ErrForceCloseLocked  = errors.New("force close requires a prior close attempt that reported missing ballots")
)
