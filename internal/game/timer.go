package game

import "encoding/json"

// RelayPlayersTime forwards client-measured elapsed times to the team
// group for display. The server keeps no clock of its own; timers are
// purely client-observed.
func (s *Session) RelayPlayersTime(teamID string, playersTime json.RawMessage) ([]Event, error) {
	if _, ok := s.teams[teamID]; !ok {
		return nil, wrapID(ErrTeamNotFound, teamID)
	}
	return []Event{{
		Type:    EvtPlayersTime,
		To:      toTeam(teamID),
		Payload: PlayersTime{TeamID: teamID, PlayersTime: playersTime},
	}}, nil
}
