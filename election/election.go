// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "time"

// Stage is the lifecycle phase of the election. Stages only ever advance in
// the declared order; no operation moves the election backward or skips ahead.
type Stage uint8

const (
	RegisteringVoters Stage = iota
	ProposalsOpen
	ProposalsClosed
	VotingOpen
	VotingClosed
	ResultsTallied
)

// MarshalJSON renders stages by name so projections and the event ledger
// stay readable.
func (s Stage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s Stage) String() string {
	switch s {
	case RegisteringVoters:
		return "registering_voters"
	case ProposalsOpen:
		return "proposals_open"
	case ProposalsClosed:
		return "proposals_closed"
	case VotingOpen:
		return "voting_open"
	case VotingClosed:
		return "voting_closed"
	case ResultsTallied:
		return "results_tallied"
	default:
		return "unknown"
	}
}

// Variant selects between the two historical rule sets. Both run through the
// same machine; the switch only changes the tie-break rule, the close/tally
// coupling, blank ballots, and batch registration semantics.
type Variant uint8

const (
	// Strict: no blank ballots, manual tally after close, ties resolved by
	// the last proposal in id order to reach the maximum count.
	Strict Variant = iota
	// Extended: ballot id 0 is a blank vote, closing with full turnout
	// tallies immediately, incomplete turnout arms ForceCloseVoting, and
	// ties favor the proposal that reached the maximum count first.
	Extended
)

func (v Variant) String() string {
	if v == Extended {
		return "extended"
	}
	return "strict"
}

// BlankBallot is the reserved pseudo-proposal id for an explicit blank vote
// in the extended variant. It counts toward turnout, never toward a win.
const BlankBallot uint32 = 0

// Voter is a registered participant. Registered and Voted are monotonic:
// once set they are never cleared.
type Voter struct {
	Address    string `json:"address"`
	Registered bool   `json:"registered"`
	Voted      bool   `json:"voted"`
	// Ballot is the proposal id the voter chose. Only meaningful once
	// Voted is true; BlankBallot records an explicit blank vote.
	Ballot uint32 `json:"ballot"`
}

// Proposal ids are dense and contiguous from 1; ids are never reused.
// Everything but the vote count is immutable after submission.
type Proposal struct {
	ID          uint32 `json:"id"`
	Description string `json:"description"`
	Votes       uint32 `json:"votes"`

	// seq is the point in the global operation sequence at which the
	// proposal attained its current vote count: stamped at submission,
	// advanced on every vote it receives. The extended tally compares
	// these stamps to break ties.
	seq uint64
}

// VoteRecord pairs a voter with the ballot they cast, in registration order.
type VoteRecord struct {
	Address    string `json:"address"`
	ProposalID uint32 `json:"proposal_id"`
}

// Election is the whole workflow: voter registry, proposal registry, ballots
// and the final tally, advanced through six stages by a single administrator.
//
// The type assumes a single logical writer. Every operation runs its guards
// before touching any field, so a rejected call leaves the election exactly
// as it found it. Callers that share an Election across goroutines must
// serialize access themselves.
type Election struct {
	admin   string
	variant Variant
	sink    Sink
	created time.Time

	stage     Stage
	voters    map[string]*Voter
	roll      []string // registration order, for enumeration
	proposals []Proposal

	seq     uint64 // advances on each submission and each counted vote
	ballots uint32 // total ballots cast, blanks included
	blank   uint32 // blank ballots (extended only)

	winner          uint32 // set once at the tally transition, then immutable
	forceCloseArmed bool
}

// New creates an election administered by admin. The administrator identity
// is fixed for the life of the election. A nil sink is valid and disables
// event emission.
func New(admin string, variant Variant, sink Sink) (*Election, error) {
	if admin == "" {
		return nil, ErrInvalidAddress
	}
	return &Election{
		admin:   admin,
		variant: variant,
		sink:    sink,
		created: time.Now(),
		stage:   RegisteringVoters,
		voters:  make(map[string]*Voter),
	}, nil
}

// RegisterVoter adds one address to the roll. Administrator only, and only
// while registration is open.
func (e *Election) RegisterVoter(caller, address string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != RegisteringVoters {
		return ErrWrongStage
	}
	if address == "" {
		return ErrInvalidAddress
	}
	if _, ok := e.voters[address]; ok {
		return ErrAlreadyRegistered
	}

	e.voters[address] = &Voter{Address: address, Registered: true}
	e.roll = append(e.roll, address)
	e.emit(VoterRegistered{Address: address})
	return nil
}

// RegisterVoters registers a batch of addresses in order. Under the extended
// variant already-registered addresses are silently skipped, so re-running a
// batch is harmless. Under the strict variant any empty or duplicate address
// rejects the whole batch; nothing is registered.
func (e *Election) RegisterVoters(caller string, addresses []string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != RegisteringVoters {
		return ErrWrongStage
	}

	// Validate the whole batch up front so a rejection has no effect.
	seen := make(map[string]bool, len(addresses))
	for _, address := range addresses {
		if address == "" {
			return ErrInvalidAddress
		}
		if e.variant == Strict {
			if _, ok := e.voters[address]; ok || seen[address] {
				return ErrAlreadyRegistered
			}
		}
		seen[address] = true
	}

	for _, address := range addresses {
		if _, ok := e.voters[address]; ok {
			continue // lenient skip; unreachable under strict
		}
		e.voters[address] = &Voter{Address: address, Registered: true}
		e.roll = append(e.roll, address)
		e.emit(VoterRegistered{Address: address})
	}
	return nil
}

// OpenProposals moves the election into the proposal window. Fails if the
// roll is still empty; an election no one can vote in is a misconfiguration.
func (e *Election) OpenProposals(caller string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != RegisteringVoters {
		return ErrWrongStage
	}
	if len(e.roll) == 0 {
		return ErrNoVoters
	}
	e.transition(ProposalsOpen)
	return nil
}

// SubmitProposal records a proposal from a registered voter and returns its
// id. Ids are assigned sequentially starting at 1.
func (e *Election) SubmitProposal(caller, description string) (uint32, error) {
	v, ok := e.voters[caller]
	if !ok || !v.Registered {
		return 0, ErrUnauthorized
	}
	if e.stage != ProposalsOpen {
		return 0, ErrWrongStage
	}
	if description == "" {
		return 0, ErrEmptyDescription
	}

	id := uint32(len(e.proposals)) + 1
	e.seq++
	e.proposals = append(e.proposals, Proposal{
		ID:          id,
		Description: description,
		seq:         e.seq,
	})
	e.emit(ProposalSubmitted{ID: id})
	return id, nil
}

// CloseProposals ends the proposal window. At least one proposal must exist,
// otherwise there would be nothing to vote on.
func (e *Election) CloseProposals(caller string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != ProposalsOpen {
		return ErrWrongStage
	}
	if len(e.proposals) == 0 {
		return ErrNoProposals
	}
	e.transition(ProposalsClosed)
	return nil
}

// OpenVoting opens the voting window.
func (e *Election) OpenVoting(caller string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != ProposalsClosed {
		return ErrWrongStage
	}
	e.transition(VotingOpen)
	return nil
}

// CastVote records a single ballot for the caller. Valid ids run from 1 to
// the proposal count; the extended variant additionally accepts BlankBallot,
// which counts toward turnout but never toward any proposal.
func (e *Election) CastVote(caller string, proposalID uint32) error {
	v, ok := e.voters[caller]
	if !ok || !v.Registered {
		return ErrUnauthorized
	}
	if e.stage != VotingOpen {
		return ErrWrongStage
	}
	if v.Voted {
		return ErrAlreadyVoted
	}
	if proposalID > uint32(len(e.proposals)) {
		return ErrInvalidProposal
	}
	if proposalID == BlankBallot && e.variant != Extended {
		return ErrInvalidProposal
	}

	if proposalID == BlankBallot {
		e.blank++
	} else {
		p := &e.proposals[proposalID-1]
		p.Votes++
		e.seq++
		p.seq = e.seq
	}
	v.Voted = true
	v.Ballot = proposalID
	e.ballots++
	e.emit(VoteCast{Address: caller, ProposalID: proposalID})
	return nil
}

// CloseVoting ends the voting window.
//
// Strict variant: unconditionally transitions to VotingClosed; the tally is
// a separate step.
//
// Extended variant: if any registered voter has not voted, the election does
// NOT close. The missing-ballot count is returned as a diagnostic and
// ForceCloseVoting becomes available; the administrator decides whether to
// wait or override. With full turnout the election closes and tallies in one
// step, landing on ResultsTallied.
func (e *Election) CloseVoting(caller string) (missing int, err error) {
	if caller != e.admin {
		return 0, ErrUnauthorized
	}
	if e.stage != VotingOpen {
		return 0, ErrWrongStage
	}

	if e.variant == Strict {
		e.transition(VotingClosed)
		return 0, nil
	}

	missing = len(e.roll) - int(e.ballots)
	if missing > 0 {
		e.forceCloseArmed = true
		return missing, nil
	}
	e.forceCloseArmed = false
	e.transition(VotingClosed)
	e.winner = e.tallyWinner()
	e.transition(ResultsTallied)
	return 0, nil
}

// ForceCloseVoting closes the election despite incomplete turnout and
// tallies whatever ballots were cast. It only unlocks after an ordinary
// CloseVoting has reported missing ballots, so the administrator cannot cut
// voting short without first observing the shortfall.
func (e *Election) ForceCloseVoting(caller string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != VotingOpen {
		return ErrWrongStage
	}
	if !e.forceCloseArmed {
		return ErrForceCloseLocked
	}
	e.forceCloseArmed = false
	e.transition(VotingClosed)
	e.winner = e.tallyWinner()
	e.transition(ResultsTallied)
	return nil
}

// Tally computes the winner and finalizes the election. Strict-variant path:
// the extended variant never rests at VotingClosed, so this rejects there
// with ErrWrongStage like any other out-of-order call.
func (e *Election) Tally(caller string) error {
	if caller != e.admin {
		return ErrUnauthorized
	}
	if e.stage != VotingClosed {
		return ErrWrongStage
	}
	if len(e.proposals) == 0 {
		return ErrNoProposals
	}
	e.winner = e.tallyWinner()
	e.transition(ResultsTallied)
	return nil
}

// Winner returns the winning proposal once results are tallied.
func (e *Election) Winner() (Proposal, error) {
	if e.stage != ResultsTallied {
		return Proposal{}, ErrWrongStage
	}
	return e.proposals[e.winner-1], nil
}

// Proposals returns all proposals in id order. Registered voters only.
func (e *Election) Proposals(caller string) ([]Proposal, error) {
	if v, ok := e.voters[caller]; !ok || !v.Registered {
		return nil, ErrUnauthorized
	}
	out := make([]Proposal, len(e.proposals))
	copy(out, e.proposals)
	return out, nil
}

// Votes returns who voted for what, in registration order, voters who have
// not voted omitted. Registered voters only.
func (e *Election) Votes(caller string) ([]VoteRecord, error) {
	if v, ok := e.voters[caller]; !ok || !v.Registered {
		return nil, ErrUnauthorized
	}
	records := make([]VoteRecord, 0, e.ballots)
	for _, address := range e.roll {
		v := e.voters[address]
		if !v.Voted {
			continue
		}
		records = append(records, VoteRecord{Address: address, ProposalID: v.Ballot})
	}
	return records, nil
}

// Voter looks up one participant record by address.
func (e *Election) Voter(address string) (Voter, error) {
	v, ok := e.voters[address]
	if !ok {
		return Voter{}, ErrNotFound
	}
	return *v, nil
}

// Proposal looks up one proposal by id.
func (e *Election) Proposal(id uint32) (Proposal, error) {
	if id < 1 || id > uint32(len(e.proposals)) {
		return Proposal{}, ErrNotFound
	}
	return e.proposals[id-1], nil
}

// Stage returns the current workflow stage.
func (e *Election) Stage() Stage { return e.stage }

// Variant returns the rule set the election was created with.
func (e *Election) Variant() Variant { return e.variant }

// CreatedAt returns when the election was constructed.
func (e *Election) CreatedAt() time.Time { return e.created }

// VoterCount returns the number of registered voters.
func (e *Election) VoterCount() int { return len(e.roll) }

// ProposalCount returns the number of submitted proposals.
func (e *Election) ProposalCount() int { return len(e.proposals) }

// BallotCount returns the number of ballots cast, blanks included.
func (e *Election) BallotCount() int { return int(e.ballots) }

// BlankCount returns the number of blank ballots cast.
func (e *Election) BlankCount() int { return int(e.blank) }

// ForceCloseArmed reports whether a failed close attempt has unlocked
// ForceCloseVoting.
func (e *Election) ForceCloseArmed() bool { return e.forceCloseArmed }

func (e *Election) transition(next Stage) {
	prev := e.stage
	e.stage = next
	e.emit(StageChanged{From: prev, To: next})
}

func (e *Election) emit(ev Event) {
	if e.sink != nil {
		e.sink.Append(ev)
	}
}
