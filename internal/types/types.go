package types

import "encoding/json"

// ClientMessage is the inbound wire envelope. Type selects the action;
// the remaining fields are populated per action, see pkg/types for the
// full protocol.
type ClientMessage struct {
	Type        string          `json:"type"`
	Name        string          `json:"name,omitempty"`
	OldRef      string          `json:"old_ref,omitempty"`
	PlayerID    string          `json:"player_id,omitempty"`
	TeamID      string          `json:"team_id,omitempty"`
	DotIndex    int             `json:"dot_index,omitempty"`
	Round       string          `json:"round,omitempty"`
	NextRound   string          `json:"next_round,omitempty"`
	TeamSize    int             `json:"team_size,omitempty"`
	BatchSize   int             `json:"batch_size,omitempty"`
	TotalSize   int             `json:"total_size,omitempty"`
	PlayersTime json.RawMessage `json:"players_time,omitempty"`
}

// ServerMessage is the outbound wire envelope.
type ServerMessage struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
