package game

import "encoding/json"

// Scope selects the subscriber group an event is addressed to.
type Scope string

const (
	ScopeLobby  Scope = "lobby"
	ScopeTeam   Scope = "team"
	ScopePlayer Scope = "player"
)

// Audience addresses an outbound event: the whole lobby, one team, or
// one player. The transport layer resolves it to connections.
type Audience struct {
	Scope    Scope
	TeamID   string
	PlayerID string
}

func toLobby() Audience {
	return Audience{Scope: ScopeLobby}
}

func toTeam(teamID string) Audience {
	return Audience{Scope: ScopeTeam, TeamID: teamID}
}

func toPlayer(playerID string) Audience {
	return Audience{Scope: ScopePlayer, PlayerID: playerID}
}

type EventType string

const (
	EvtPlayerJoined EventType = "player_joined"
	EvtPlayerList   EventType = "player_list"
	EvtJoinRoom     EventType = "join_room"
	EvtGameReset    EventType = "game_reset"
	EvtTeamSnapshot EventType = "team_snapshot"
	EvtDotClicked   EventType = "dot_clicked_update"
	EvtEnableNext   EventType = "enable_next"
	EvtNextTurn     EventType = "next_player_turn"
	EvtNewRound     EventType = "new_round"
	EvtStartTimer   EventType = "start_timer"
	EvtStopTimer    EventType = "stop_timer"
	EvtResetTimer   EventType = "reset_timer"
	EvtPlayersTime  EventType = "players_time"
	EvtError        EventType = "error"
)

// Event is one outbound message produced by a session operation.
type Event struct {
	Type    EventType
	To      Audience
	Payload any
}

// PlayerView is the wire shape of a player's public state.
type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TeamID      string `json:"team_id,omitempty"`
	IsCurrent   bool   `json:"is_current_player"`
	WindowStart int    `json:"start_index"`
	WindowEnd   int    `json:"end_index"`
	Clicked     int    `json:"total_dots_clicked"`
	TimerActive bool   `json:"timer_active"`
}

func viewOf(p *Player) PlayerView {
	return PlayerView{
		ID:          p.ID,
		Name:        p.Name,
		TeamID:      p.TeamID,
		IsCurrent:   p.IsCurrent,
		WindowStart: p.WindowStart,
		WindowEnd:   p.WindowEnd,
		Clicked:     p.Clicked,
		TimerActive: p.TimerActive,
	}
}

func views(players []*Player) []PlayerView {
	vs := make([]PlayerView, 0, len(players))
	for _, p := range players {
		vs = append(vs, viewOf(p))
	}
	return vs
}

type PlayerList struct {
	Players []PlayerView `json:"players"`
}

type TeamRoster struct {
	TeamID  string       `json:"team_id"`
	Members []PlayerView `json:"members"`
}

// Snapshot carries a team's roster plus the full click ledger, all
// rounds included.
type Snapshot struct {
	TeamID  string                 `json:"team_id"`
	Members []PlayerView           `json:"members"`
	Ledger  map[string]ClickRecord `json:"ledger"`
}

type ClickUpdate struct {
	TeamID   string `json:"team_id"`
	PlayerID string `json:"player_id"`
	Round    Round  `json:"round"`
	Clicked  []int  `json:"clicked_dots"`
}

// TurnGate tells the acting player whether enough clicks are banked to
// request a turn advance, and whether their round quota is met.
type TurnGate struct {
	NextEnabled bool `json:"is_next_enabled"`
	AllClicked  bool `json:"is_all_clicked"`
}

type TurnUpdate struct {
	TeamID         string           `json:"team_id"`
	Round          Round            `json:"round"`
	Members        []PlayerView     `json:"members"`
	Ledger         map[string][]int `json:"ledger"`
	RoundCompleted bool             `json:"round_completed"`
	IsLastPlayer   bool             `json:"is_last_player"`
}

type RoundStart struct {
	TeamID    string           `json:"team_id"`
	Round     Round            `json:"round"`
	BatchSize int              `json:"batch_size"`
	Members   []PlayerView     `json:"members"`
	Ledger    map[string][]int `json:"ledger"`
}

// TimerTarget names what the timer directive applies to; the audience
// carries the same information, this is for the client payload.
type TimerTarget struct {
	TeamID   string `json:"team_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
}

func timerEvent(typ EventType, to Audience) Event {
	return Event{Type: typ, To: to, Payload: TimerTarget{TeamID: to.TeamID, PlayerID: to.PlayerID}}
}

// PlayersTime relays client-measured elapsed times verbatim; the server
// never measures time itself.
type PlayersTime struct {
	TeamID      string          `json:"team_id"`
	PlayersTime json.RawMessage `json:"players_time"`
}

type ErrorAck struct {
	Message string `json:"message"`
}
