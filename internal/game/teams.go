package game

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// StartGame partitions the roster, in arrival order, into teams of
// teamSize. The last team takes the remainder and may be smaller, never
// larger. No shuffling, no rebalancing. Any previous split is replaced
// wholesale, ledger included.
func (s *Session) StartGame(teamSize int) ([]Event, error) {
	if teamSize < 1 {
		return nil, wrapID(ErrUnsupportedCommand, "team size "+strconv.Itoa(teamSize))
	}

	s.teams = make(map[string]*Team)
	s.ledger = make(map[string]map[string]ClickRecord)

	n := len(s.players)
	numTeams := (n + teamSize - 1) / teamSize

	var evs []Event
	for i := 0; i < numTeams; i++ {
		lo := i * teamSize
		hi := min(lo+teamSize, n)

		id, err := s.newTeamID()
		if err != nil {
			return nil, err
		}
		t := &Team{ID: id, RoomID: s.RoomID, Members: s.players[lo:hi:hi]}
		s.teams[id] = t
		s.ledger[id] = make(map[string]ClickRecord, len(t.Members))
		s.seedTeam(t)

		evs = append(evs, Event{
			Type:    EvtJoinRoom,
			To:      toTeam(id),
			Payload: TeamRoster{TeamID: id, Members: views(t.Members)},
		})
	}
	return evs, nil
}

// ResetGame restores every existing team to its game-start state
// without re-partitioning membership. Team identity is reused across
// resets, so repeated restarts do not accumulate stale team records.
func (s *Session) ResetGame() []Event {
	for _, t := range s.teams {
		s.seedTeam(t)
	}
	return []Event{{Type: EvtGameReset, To: toLobby()}}
}

// TeamSnapshot returns one team's roster and full click ledger to the
// team group.
func (s *Session) TeamSnapshot(teamID string) ([]Event, error) {
	t, ok := s.teams[teamID]
	if !ok {
		return nil, wrapID(ErrTeamNotFound, teamID)
	}
	ledger := make(map[string]ClickRecord, len(t.Members))
	for _, p := range t.Members {
		ledger[p.ID] = s.ledger[t.ID][p.ID]
	}
	return []Event{{
		Type:    EvtTeamSnapshot,
		To:      toTeam(teamID),
		Payload: Snapshot{TeamID: teamID, Members: views(t.Members), Ledger: ledger},
	}}, nil
}

// seedTeam puts every member into round-one starting state: member zero
// holds the turn with a window spanning the whole round quota, everyone
// else waits with a closed window.
func (s *Session) seedTeam(t *Team) {
	t.TimerStarted = false
	for i, p := range t.Members {
		p.TeamID = t.ID
		p.IsCurrent = i == 0
		p.WindowStart = 0
		p.WindowEnd = 0
		if i == 0 {
			p.WindowEnd = Rounds[Round1].TotalSize
		}
		p.Clicked = 0
		p.TimerActive = false
		p.Completed = make(map[Round]bool)
		s.ledger[t.ID][p.ID] = NewClickRecord()
	}
}

// newTeamID draws 6-digit ids until one is free in this session. The
// reference generator skipped the collision check; here a duplicate
// just forces another draw.
func (s *Session) newTeamID() (string, error) {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return "", err
		}
		id := strconv.FormatInt(n.Int64()+100000, 10)
		if _, taken := s.teams[id]; !taken {
			return id, nil
		}
	}
}
