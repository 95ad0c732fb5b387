// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// Event is a record of a committed state change, emitted after the mutation
// it describes. Events carry ids and addresses only; formatting is left to
// whoever consumes them.
type Event interface {
	Kind() string
}

// Sink receives events for external persistence or display. Implementations
// must treat the stream as append-only; the election never re-emits.
type Sink interface {
	Append(Event)
}

type VoterRegistered struct {
	Address string `json:"address"`
}

type StageChanged struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

type ProposalSubmitted struct {
	ID uint32 `json:"id"`
}

type VoteCast struct {
	Address    string `json:"address"`
	ProposalID uint32 `json:"proposal_id"`
}

func (VoterRegistered) Kind() string   { return "voter_registered" }
func (StageChanged) Kind() string      { return "stage_changed" }
func (ProposalSubmitted) Kind() string { return "proposal_submitted" }
func (VoteCast) Kind() string          { return "vote_cast" }
