// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// tallyWinner runs a single ascending pass over the proposals, keeping a
// running best candidate. Callers guarantee at least one proposal exists.
//
// Strict rule: a candidate replaces the best whenever its count is >= the
// best's. Because the pass ascends in id order, ties go to the LAST proposal
// at the maximum. That is the documented behavior and is preserved exactly;
// do not "fix" it to a more intuitive rule.
//
// Extended rule: a candidate replaces the best on a strictly greater count,
// or on an equal count attained earlier in the operation sequence. Ties go
// to the proposal that REACHED the maximum first, not the one submitted
// first - though with zero votes everywhere the sequence stamps are the
// submission stamps and the earliest-submitted proposal wins.
//
// Blank ballots never enter the pass: they accumulate on a separate counter
// and confer no eligibility to win.
func (e *Election) tallyWinner() uint32 {
	best := &e.proposals[0]
	for i := 1; i < len(e.proposals); i++ {
		p := &e.proposals[i]
		switch e.variant {
		case Extended:
			if p.Votes > best.Votes || (p.Votes == best.Votes && p.seq < best.seq) {
				best = p
			}
		default:
			if p.Votes >= best.Votes {
				best = p
			}
		}
	}
	return best.ID
}
