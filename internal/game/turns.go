package game

// RecordClick banks one clicked target index for the acting player.
// Banked clicks are not yet committed: the same index may arrive twice
// and a player may click past their batch quota, the excess simply
// waits in the ledger for the next turn advance.
func (s *Session) RecordClick(teamID, playerID string, round Round, dotIndex, batchSize, totalSize int) ([]Event, error) {
	t, ok := s.teams[teamID]
	if !ok {
		return nil, wrapID(ErrTeamNotFound, teamID)
	}
	p, _ := t.member(playerID)
	if p == nil {
		return nil, wrapID(ErrPlayerNotFound, playerID)
	}
	rec, err := s.record(teamID, playerID)
	if err != nil {
		return nil, err
	}

	clicks := rec.Add(round, dotIndex)
	clicked := len(clicks)
	nextEnabled := clicked >= batchSize
	allClicked := clicked+p.Clicked >= totalSize
	// Whether the quota was already met before this click separates a
	// genuine first click of the turn window from an over-click after
	// the timer was stopped.
	wasAllClicked := clicked-1+p.Clicked >= totalSize

	var evs []Event
	if !p.TimerActive && !wasAllClicked {
		// First click of this player's turn window.
		p.TimerActive = true
		evs = append(evs, timerEvent(EvtStartTimer, toPlayer(p.ID)))
		if !t.TimerStarted {
			t.TimerStarted = true
			evs = append(evs, timerEvent(EvtStartTimer, toTeam(t.ID)))
		}
	}
	if allClicked && p.TimerActive {
		// Round quota reached: nothing useful left to click even though
		// the turn has not formally advanced.
		p.TimerActive = false
		evs = append(evs, timerEvent(EvtStopTimer, toPlayer(p.ID)))
	}

	evs = append(evs,
		Event{
			Type: EvtDotClicked,
			To:   toTeam(t.ID),
			Payload: ClickUpdate{
				TeamID:   t.ID,
				PlayerID: p.ID,
				Round:    round,
				Clicked:  append([]int(nil), clicks...),
			},
		},
		Event{
			Type:    EvtEnableNext,
			To:      toPlayer(p.ID),
			Payload: TurnGate{NextEnabled: nextEnabled, AllClicked: allClicked},
		},
	)
	return evs, nil
}

// AdvanceTurn commits one batch and rotates the turn. With fewer than
// batchSize banked clicks the request is ignored outright: no state
// changes, no events. That is the commit-side precondition, not an
// invariant violation, so no error surfaces either.
func (s *Session) AdvanceTurn(teamID, playerID string, round Round, batchSize, totalSize int) ([]Event, error) {
	t, ok := s.teams[teamID]
	if !ok {
		return nil, wrapID(ErrTeamNotFound, teamID)
	}
	p, idx := t.member(playerID)
	if p == nil {
		return nil, wrapID(ErrPlayerNotFound, playerID)
	}
	rec, err := s.record(teamID, playerID)
	if err != nil {
		return nil, err
	}

	if rec.Count(round) < batchSize {
		return nil, nil
	}

	// Credit the oldest clicks: the batch's smallest indices leave the
	// ledger, the rest stay banked.
	rec.TakeSmallest(round, batchSize)
	p.Clicked += batchSize

	if p.WindowEnd-p.WindowStart == batchSize {
		// Window exactly consumed: the turn leaves this player.
		p.WindowStart = p.WindowEnd
		p.IsCurrent = false
	} else {
		p.WindowStart += batchSize
	}

	isLast := idx == len(t.Members)-1
	if !isLast {
		next := t.Members[idx+1]
		next.IsCurrent = true
		next.WindowEnd += batchSize
	}

	if p.Clicked >= totalSize {
		p.Completed[round] = true
		p.TimerActive = false
	}
	roundCompleted := isLast && p.Clicked >= totalSize

	var evs []Event
	if isLast && p.Clicked == batchSize {
		// The team's first completed batch carries the first timer value.
		t.TimerStarted = true
		evs = append(evs, timerEvent(EvtStartTimer, toTeam(t.ID)))
	}
	if roundCompleted {
		evs = append(evs, timerEvent(EvtStopTimer, toTeam(t.ID)))
	}

	evs = append(evs, Event{
		Type: EvtNextTurn,
		To:   toTeam(t.ID),
		Payload: TurnUpdate{
			TeamID:         t.ID,
			Round:          round,
			Members:        views(t.Members),
			Ledger:         s.roundLedger(t, round),
			RoundCompleted: roundCompleted,
			IsLastPlayer:   isLast,
		},
	})
	return evs, nil
}

// StartNewRound moves one team into nextRound: member zero takes the
// turn with a window spanning the new round's total quota, all timers
// reset, and the new round's ledger entries start empty. Completed
// rounds keep their history.
func (s *Session) StartNewRound(teamID string, round, nextRound Round, batchSize int) ([]Event, error) {
	t, ok := s.teams[teamID]
	if !ok {
		return nil, wrapID(ErrTeamNotFound, teamID)
	}
	quota, ok := Rounds[nextRound]
	if !ok {
		return nil, wrapID(ErrUnknownRound, string(nextRound))
	}

	t.TimerStarted = false
	evs := make([]Event, 0, len(t.Members)+2)
	for i, p := range t.Members {
		p.IsCurrent = i == 0
		p.WindowStart = 0
		p.WindowEnd = 0
		if i == 0 {
			p.WindowEnd = quota.TotalSize
		}
		p.Clicked = 0
		p.TimerActive = false
		delete(p.Completed, round)

		rec, err := s.record(t.ID, p.ID)
		if err != nil {
			return nil, err
		}
		rec.Reset(nextRound)

		// Every member's personal timer stops, not just the team clock.
		evs = append(evs, timerEvent(EvtStopTimer, toPlayer(p.ID)))
	}

	evs = append(evs,
		timerEvent(EvtResetTimer, toTeam(t.ID)),
		Event{
			Type: EvtNewRound,
			To:   toTeam(t.ID),
			Payload: RoundStart{
				TeamID:    t.ID,
				Round:     nextRound,
				BatchSize: batchSize,
				Members:   views(t.Members),
				Ledger:    s.roundLedger(t, nextRound),
			},
		},
	)
	return evs, nil
}
