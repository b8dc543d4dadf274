package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// twoPlayerTeam builds a session holding one two-member team at the
// start of round1 with a per-player total quota of total.
func twoPlayerTeam(total int) (*Session, *Team) {
	s := NewSession("room-1")
	a := &Player{ID: "a", Name: "A", ConnRef: "conn-a", Completed: map[Round]bool{}}
	b := &Player{ID: "b", Name: "B", ConnRef: "conn-b", Completed: map[Round]bool{}}
	s.players = []*Player{a, b}

	team := &Team{ID: "123456", RoomID: s.RoomID, Members: []*Player{a, b}}
	s.teams[team.ID] = team
	s.ledger[team.ID] = map[string]ClickRecord{
		"a": NewClickRecord(),
		"b": NewClickRecord(),
	}
	a.TeamID, b.TeamID = team.ID, team.ID
	a.IsCurrent = true
	a.WindowEnd = total
	return s, team
}

func clickRange(t *testing.T, s *Session, teamID, playerID string, round Round, from, n, batch, total int) []Event {
	t.Helper()
	var last []Event
	for i := from; i < from+n; i++ {
		evs, err := s.RecordClick(teamID, playerID, round, i, batch, total)
		require.NoError(t, err)
		last = evs
	}
	return last
}

func TestRecordClickGatesAndTimers(t *testing.T) {
	s, team := twoPlayerTeam(8)

	// First click starts the player timer and, being the team's first,
	// the team timer.
	evs, err := s.RecordClick(team.ID, "a", Round1, 0, 4, 8)
	require.NoError(t, err)

	start := requireEvent(t, evs, EvtStartTimer)
	require.Equal(t, ScopePlayer, start.To.Scope)
	found := 0
	for _, ev := range evs {
		if ev.Type == EvtStartTimer {
			found++
		}
	}
	require.Equal(t, 2, found, "player and team timer start")

	update := requireEvent(t, evs, EvtDotClicked)
	require.Equal(t, ScopeTeam, update.To.Scope)
	require.Equal(t, []int{0}, update.Payload.(ClickUpdate).Clicked)

	gate := requireEvent(t, evs, EvtEnableNext)
	require.Equal(t, ScopePlayer, gate.To.Scope)
	require.Equal(t, "a", gate.To.PlayerID)
	require.False(t, gate.Payload.(TurnGate).NextEnabled)

	// Fourth click banks a full batch.
	evs = clickRange(t, s, team.ID, "a", Round1, 1, 3, 4, 8)
	gate = requireEvent(t, evs, EvtEnableNext)
	require.True(t, gate.Payload.(TurnGate).NextEnabled)
	require.False(t, gate.Payload.(TurnGate).AllClicked)

	// Second click of a teammate must not restart the team timer.
	s.teams[team.ID].Members[1].IsCurrent = true
	evs, err = s.RecordClick(team.ID, "b", Round1, 0, 4, 8)
	require.NoError(t, err)
	start = requireEvent(t, evs, EvtStartTimer)
	require.Equal(t, ScopePlayer, start.To.Scope)
	for _, ev := range evs {
		if ev.Type == EvtStartTimer && ev.To.Scope == ScopeTeam {
			t.Fatalf("team timer started twice")
		}
	}
}

func TestRecordClickStopsTimerAtRoundQuota(t *testing.T) {
	s, team := twoPlayerTeam(4)

	clickRange(t, s, team.ID, "a", Round1, 0, 3, 4, 4)
	require.True(t, team.Members[0].TimerActive)

	evs, err := s.RecordClick(team.ID, "a", Round1, 3, 4, 4)
	require.NoError(t, err)
	stop := requireEvent(t, evs, EvtStopTimer)
	require.Equal(t, ScopePlayer, stop.To.Scope)
	require.False(t, team.Members[0].TimerActive)

	gate := requireEvent(t, evs, EvtEnableNext)
	require.True(t, gate.Payload.(TurnGate).AllClicked)

	// Over-clicking past the quota must not restart the timer.
	evs, err = s.RecordClick(team.ID, "a", Round1, 4, 4, 4)
	require.NoError(t, err)
	if _, ok := findEvent(evs, EvtStartTimer); ok {
		t.Fatalf("timer restarted after round quota reached")
	}
}

// A first click that by itself meets the round quota still starts the
// timer before stopping it; only later over-clicks stay silent.
func TestRecordClickFirstClickMeetsQuota(t *testing.T) {
	s, team := twoPlayerTeam(1)

	evs, err := s.RecordClick(team.ID, "a", Round1, 0, 1, 1)
	require.NoError(t, err)
	start := requireEvent(t, evs, EvtStartTimer)
	require.Equal(t, ScopePlayer, start.To.Scope)
	stop := requireEvent(t, evs, EvtStopTimer)
	require.Equal(t, ScopePlayer, stop.To.Scope)
	require.False(t, team.Members[0].TimerActive)

	evs, err = s.RecordClick(team.ID, "a", Round1, 1, 1, 1)
	require.NoError(t, err)
	if _, ok := findEvent(evs, EvtStartTimer); ok {
		t.Fatalf("timer restarted by an over-click")
	}
}

func TestRecordClickUnknownLookups(t *testing.T) {
	s, team := twoPlayerTeam(8)

	_, err := s.RecordClick("000000", "a", Round1, 0, 4, 8)
	require.ErrorIs(t, err, ErrTeamNotFound)

	_, err = s.RecordClick(team.ID, "ghost", Round1, 0, 4, 8)
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAdvanceTurnBelowQuotaIsNoOp(t *testing.T) {
	s, team := twoPlayerTeam(8)
	clickRange(t, s, team.ID, "a", Round1, 0, 3, 4, 8)

	before := *team.Members[0]
	evs, err := s.AdvanceTurn(team.ID, "a", Round1, 4, 8)
	require.NoError(t, err)
	require.Nil(t, evs)

	rec, err := s.record(team.ID, "a")
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, rec[Round1])
	require.Equal(t, before.Clicked, team.Members[0].Clicked)
	require.Equal(t, before.WindowStart, team.Members[0].WindowStart)
	require.Equal(t, before.IsCurrent, team.Members[0].IsCurrent)
}

func TestAdvanceTurnConsumesSmallestIndices(t *testing.T) {
	s, team := twoPlayerTeam(8)
	for _, idx := range []int{7, 2, 9, 5, 3} {
		_, err := s.RecordClick(team.ID, "a", Round1, idx, 3, 8)
		require.NoError(t, err)
	}

	_, err := s.AdvanceTurn(team.ID, "a", Round1, 3, 8)
	require.NoError(t, err)

	rec, err := s.record(team.ID, "a")
	require.NoError(t, err)
	require.Equal(t, []int{7, 9}, rec[Round1], "only the two largest stay banked")
	require.Equal(t, 3, team.Members[0].Clicked)
}

// The canonical two-player round: team size 2, batch 4, total 4.
func TestTwoPlayerRound(t *testing.T) {
	s, team := twoPlayerTeam(4)
	a, b := team.Members[0], team.Members[1]

	clickRange(t, s, team.ID, "a", Round1, 0, 4, 4, 4)
	evs, err := s.AdvanceTurn(team.ID, "a", Round1, 4, 4)
	require.NoError(t, err)

	require.Equal(t, 4, a.Clicked)
	require.False(t, a.IsCurrent, "window exactly consumed")
	require.Equal(t, 4, a.WindowStart)
	require.True(t, b.IsCurrent)
	require.Equal(t, 4, b.WindowEnd, "successor window pre-opened")

	turn := requireEvent(t, evs, EvtNextTurn).Payload.(TurnUpdate)
	require.False(t, turn.RoundCompleted)
	require.False(t, turn.IsLastPlayer)

	clickRange(t, s, team.ID, "b", Round1, 0, 4, 4, 4)
	evs, err = s.AdvanceTurn(team.ID, "b", Round1, 4, 4)
	require.NoError(t, err)

	turn = requireEvent(t, evs, EvtNextTurn).Payload.(TurnUpdate)
	require.True(t, turn.RoundCompleted)
	require.True(t, turn.IsLastPlayer)
	require.True(t, b.Completed[Round1])

	// Last member's first batch starts the team clock, completion stops it.
	startEv := requireEvent(t, evs, EvtStartTimer)
	require.Equal(t, ScopeTeam, startEv.To.Scope)
	stopEv := requireEvent(t, evs, EvtStopTimer)
	require.Equal(t, ScopeTeam, stopEv.To.Scope)
}

// A larger quota keeps the first member active across commits: the
// window shrinks batch by batch and the turn only leaves when it is
// exactly consumed.
func TestWindowSlidesUntilConsumed(t *testing.T) {
	s, team := twoPlayerTeam(8)
	a := team.Members[0]

	clickRange(t, s, team.ID, "a", Round1, 0, 4, 4, 8)
	_, err := s.AdvanceTurn(team.ID, "a", Round1, 4, 8)
	require.NoError(t, err)
	require.True(t, a.IsCurrent, "window 0..8 not yet consumed")
	require.Equal(t, 4, a.WindowStart)

	clickRange(t, s, team.ID, "a", Round1, 4, 4, 4, 8)
	_, err = s.AdvanceTurn(team.ID, "a", Round1, 4, 8)
	require.NoError(t, err)
	require.False(t, a.IsCurrent)
	require.Equal(t, 8, a.WindowStart)
	require.True(t, a.Completed[Round1])
}

func TestRoundCompletionRequiresLastMember(t *testing.T) {
	s, team := twoPlayerTeam(4)

	// Member zero reaches the full personal quota, but is not last.
	clickRange(t, s, team.ID, "a", Round1, 0, 4, 4, 4)
	evs, err := s.AdvanceTurn(team.ID, "a", Round1, 4, 4)
	require.NoError(t, err)

	turn := requireEvent(t, evs, EvtNextTurn).Payload.(TurnUpdate)
	require.False(t, turn.RoundCompleted)
	if _, ok := findEvent(evs, EvtStopTimer); ok {
		t.Fatalf("team timer stopped before the last member finished")
	}
}

func TestStartNewRoundResetsStateKeepsHistory(t *testing.T) {
	s, team := twoPlayerTeam(4)
	a, b := team.Members[0], team.Members[1]

	clickRange(t, s, team.ID, "a", Round1, 0, 5, 4, 4) // one banked over-click
	_, err := s.AdvanceTurn(team.ID, "a", Round1, 4, 4)
	require.NoError(t, err)

	evs, err := s.StartNewRound(team.ID, Round1, Round2, Rounds[Round2].BatchSize)
	require.NoError(t, err)
	requireEvent(t, evs, EvtResetTimer)

	// Both members' personal timers get an explicit stop.
	stopped := make(map[string]bool)
	for _, ev := range evs {
		if ev.Type == EvtStopTimer && ev.To.Scope == ScopePlayer {
			stopped[ev.To.PlayerID] = true
		}
	}
	require.True(t, stopped["a"] && stopped["b"], "per-player stops missing: %v", stopped)

	start := requireEvent(t, evs, EvtNewRound).Payload.(RoundStart)
	require.Equal(t, Round2, start.Round)
	require.Equal(t, Rounds[Round2].BatchSize, start.BatchSize)
	require.Empty(t, start.Ledger["a"])

	require.True(t, a.IsCurrent)
	require.Equal(t, Rounds[Round2].TotalSize, a.WindowEnd)
	require.Zero(t, a.Clicked)
	require.False(t, b.IsCurrent)
	require.Zero(t, b.WindowEnd)

	// Round-one leftovers stay retrievable.
	rec, err := s.record(team.ID, "a")
	require.NoError(t, err)
	require.Equal(t, []int{4}, rec[Round1])
	require.Empty(t, rec[Round2])

	_, err = s.StartNewRound(team.ID, Round4, "round9", 4)
	require.ErrorIs(t, err, ErrUnknownRound)
}
