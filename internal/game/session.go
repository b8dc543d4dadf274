package game

import "encoding/json"

// Session is the authoritative in-memory state for one room: the
// roster, the current team split, and the click ledger. It is owned by
// exactly one room actor, which applies one command at a time; the
// Session itself does no locking.
type Session struct {
	RoomID string

	players []*Player // arrival order
	teams   map[string]*Team
	ledger  map[string]map[string]ClickRecord
}

func NewSession(roomID string) *Session {
	return &Session{
		RoomID: roomID,
		teams:  make(map[string]*Team),
		ledger: make(map[string]map[string]ClickRecord),
	}
}

type CommandType string

const (
	CmdAddPlayer     CommandType = "AddPlayer"
	CmdRebind        CommandType = "RebindConnection"
	CmdListPlayers   CommandType = "ListPlayers"
	CmdStartGame     CommandType = "StartGame"
	CmdResetGame     CommandType = "ResetGame"
	CmdTeamSnapshot  CommandType = "TeamSnapshot"
	CmdRecordClick   CommandType = "RecordClick"
	CmdAdvanceTurn   CommandType = "AdvanceTurn"
	CmdStartNewRound CommandType = "StartNewRound"
	CmdPlayersTime   CommandType = "PlayersTime"
)

// Command is one inbound client action, already decoded from the wire.
type Command struct {
	Type        CommandType
	Name        string
	ConnRef     string
	OldRef      string
	PlayerID    string
	TeamID      string
	DotIndex    int
	Round       Round
	NextRound   Round
	TeamSize    int
	BatchSize   int
	TotalSize   int
	PlayersTime json.RawMessage
}

// Apply handles one command against the session and returns the events
// to publish. A returned error aborts only this command; session state
// is left consistent.
func (s *Session) Apply(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdAddPlayer:
		return s.AddPlayer(cmd.Name, cmd.ConnRef), nil
	case CmdRebind:
		s.RebindConnection(cmd.PlayerID, cmd.OldRef, cmd.ConnRef)
		return nil, nil
	case CmdListPlayers:
		return []Event{{Type: EvtPlayerList, To: toLobby(), Payload: PlayerList{Players: s.ListPlayers()}}}, nil
	case CmdStartGame:
		return s.StartGame(cmd.TeamSize)
	case CmdResetGame:
		return s.ResetGame(), nil
	case CmdTeamSnapshot:
		return s.TeamSnapshot(cmd.TeamID)
	case CmdRecordClick:
		return s.RecordClick(cmd.TeamID, cmd.PlayerID, cmd.Round, cmd.DotIndex, cmd.BatchSize, cmd.TotalSize)
	case CmdAdvanceTurn:
		return s.AdvanceTurn(cmd.TeamID, cmd.PlayerID, cmd.Round, cmd.BatchSize, cmd.TotalSize)
	case CmdStartNewRound:
		return s.StartNewRound(cmd.TeamID, cmd.Round, cmd.NextRound, cmd.BatchSize)
	case CmdPlayersTime:
		return s.RelayPlayersTime(cmd.TeamID, cmd.PlayersTime)
	default:
		return nil, wrapID(ErrUnsupportedCommand, string(cmd.Type))
	}
}

// PlayerConnRef resolves a player id to its current transport handle.
func (s *Session) PlayerConnRef(playerID string) (string, bool) {
	for _, p := range s.players {
		if p.ID == playerID {
			return p.ConnRef, true
		}
	}
	return "", false
}

// TeamConnRefs resolves a team id to its members' transport handles.
func (s *Session) TeamConnRefs(teamID string) []string {
	t, ok := s.teams[teamID]
	if !ok {
		return nil
	}
	refs := make([]string, 0, len(t.Members))
	for _, p := range t.Members {
		refs = append(refs, p.ConnRef)
	}
	return refs
}
