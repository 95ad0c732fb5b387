// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements a single-election voting workflow as an
authorization-gated state machine.

# Lifecycle

An election advances through six stages, strictly forward, never skipping:

	RegisteringVoters → ProposalsOpen → ProposalsClosed →
	VotingOpen → VotingClosed → ResultsTallied

The administrator fixed at construction is the only caller allowed to
register voters and drive stage transitions. Registered voters submit
proposals while the proposal window is open and cast exactly one ballot each
while the voting window is open. Out-of-order, duplicate, or unauthorized
calls are rejected with a sentinel error and leave the election untouched.

# Variants

Two rule sets share the one machine, selected by Variant:

  - Strict: close and tally are separate administrator steps; ties go to the
    last proposal in id order to reach the maximum count.
  - Extended: ballot id 0 is an explicit blank vote, closing with complete
    turnout tallies immediately, an incomplete close arms ForceCloseVoting
    instead of failing, and ties go to the proposal that reached the maximum
    count first.

# Events

Successful mutations emit VoterRegistered, StageChanged, ProposalSubmitted
and VoteCast to an optional Sink, in commit order. The sink is an external
collaborator (see the ledger package for the SQL-backed one); the election
itself never reads events back.

# Concurrency

The machine assumes a single writer: operations are synchronous, run all
guards before any mutation, and never block. Serialize external access (the
handlers package does this with one mutex).
*/
package election
