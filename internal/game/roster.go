package game

import "github.com/google/uuid"

// AddPlayer registers a new player in arrival order and announces the
// updated list to the whole lobby. The joining player additionally gets
// a private event carrying their generated id.
func (s *Session) AddPlayer(name, connRef string) []Event {
	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		ConnRef:   connRef,
		Completed: make(map[Round]bool),
	}
	s.players = append(s.players, p)

	return []Event{
		{Type: EvtPlayerJoined, To: toPlayer(p.ID), Payload: viewOf(p)},
		{Type: EvtPlayerList, To: toLobby(), Payload: PlayerList{Players: s.ListPlayers()}},
	}
}

// RebindConnection points an existing player at a new transport handle
// after a reconnect. The player is resolved by id when the client
// presents one — the id is the only identifier a client ever holds —
// with the old handle as fallback. No match is a silent no-op;
// reconnection races are not reported as errors.
func (s *Session) RebindConnection(playerID, oldRef, newRef string) {
	for _, p := range s.players {
		if playerID != "" && p.ID == playerID || playerID == "" && p.ConnRef == oldRef {
			p.ConnRef = newRef
			return
		}
	}
}

// ListPlayers snapshots the roster for lobby display.
func (s *Session) ListPlayers() []PlayerView {
	return views(s.players)
}
