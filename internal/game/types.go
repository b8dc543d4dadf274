package game

// Round names one of the four fixed stages of a game.
type Round string

const (
	Round1 Round = "round1"
	Round2 Round = "round2"
	Round3 Round = "round3"
	Round4 Round = "round4"
)

// Quota is the per-turn batch and per-player total for one round.
type Quota struct {
	BatchSize int `json:"batch_size"`
	TotalSize int `json:"total_size"`
}

// RoundOrder is the fixed progression. No round is skipped or repeated
// except via an explicit game reset.
var RoundOrder = []Round{Round1, Round2, Round3, Round4}

// Rounds holds the default quotas per round. Click and turn-advance
// messages echo these values from the client; the table itself seeds the
// first member's click window at game start and round start.
var Rounds = map[Round]Quota{
	Round1: {BatchSize: 4, TotalSize: 8},
	Round2: {BatchSize: 6, TotalSize: 12},
	Round3: {BatchSize: 8, TotalSize: 16},
	Round4: {BatchSize: 10, TotalSize: 20},
}

// Player is the authoritative per-player state. Owned by the Session;
// a Team only references its members.
type Player struct {
	ID      string
	Name    string
	ConnRef string // opaque transport handle, swapped on reconnect
	TeamID  string

	// Turn state within the active round. WindowStart/WindowEnd bound
	// which target indices the player may currently claim credit for.
	IsCurrent   bool
	WindowStart int
	WindowEnd   int
	Clicked     int // committed clicks in the active round
	TimerActive bool
	Completed   map[Round]bool
}

// Team is a fixed, ordered subset of players sharing one turn rotation.
// Member order is set at assignment time and defines the rotation.
type Team struct {
	ID      string
	RoomID  string
	Members []*Player

	// TimerStarted tracks whether the team timer has been started for
	// the active round.
	TimerStarted bool
}

func (t *Team) member(playerID string) (*Player, int) {
	for i, p := range t.Members {
		if p.ID == playerID {
			return p, i
		}
	}
	return nil, -1
}
