package game

import "sort"

// ClickRecord tracks, per round, the target indices one player has
// clicked but not yet committed. Within a round it only grows (click)
// or shrinks by the batch's smallest indices (turn advance), never both
// in one handling step.
type ClickRecord map[Round][]int

func NewClickRecord() ClickRecord {
	r := make(ClickRecord, len(RoundOrder))
	for _, rd := range RoundOrder {
		r[rd] = []int{}
	}
	return r
}

// Add appends a clicked index. Duplicates are accepted input noise and
// are not filtered.
func (r ClickRecord) Add(round Round, dotIndex int) []int {
	r[round] = append(r[round], dotIndex)
	return r[round]
}

func (r ClickRecord) Count(round Round) int { return len(r[round]) }

// TakeSmallest removes the n smallest recorded indices for round and
// returns them in ascending order. Duplicates count separately.
func (r ClickRecord) TakeSmallest(round Round, n int) []int {
	clicks := append([]int(nil), r[round]...)
	sort.Ints(clicks)
	taken := clicks[:n]
	r[round] = clicks[n:]
	return taken
}

// Reset clears the record for one round only; history from other rounds
// stays retrievable.
func (r ClickRecord) Reset(round Round) {
	r[round] = []int{}
}

func (s *Session) record(teamID, playerID string) (ClickRecord, error) {
	team, ok := s.ledger[teamID]
	if !ok {
		return nil, wrapID(ErrRecordNotFound, teamID)
	}
	rec, ok := team[playerID]
	if !ok {
		return nil, wrapID(ErrRecordNotFound, playerID)
	}
	return rec, nil
}

// roundLedger snapshots every member's banked clicks for one round,
// keyed by player id.
func (s *Session) roundLedger(t *Team, round Round) map[string][]int {
	out := make(map[string][]int, len(t.Members))
	for _, p := range t.Members {
		if rec, ok := s.ledger[t.ID][p.ID]; ok {
			out[p.ID] = append([]int(nil), rec[round]...)
		}
	}
	return out
}
