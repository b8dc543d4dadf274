package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jemis-lakhani/coingame-backend/internal/config"
	"github.com/jemis-lakhani/coingame-backend/internal/game"
	"github.com/jemis-lakhani/coingame-backend/internal/hub"
	"github.com/jemis-lakhani/coingame-backend/internal/room"
	"github.com/jemis-lakhani/coingame-backend/internal/types"
)

// Handler accepts a WebSocket per client, joins it to its room, and
// pumps commands in and events out. Each connection gets an opaque ref
// that the game state uses as the player's transport handle.
func Handler(h *hub.Hub, cfg *config.Config, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("room")
		if code == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		opts := &websocket.AcceptOptions{}
		if cfg.AllowedOrigin != "" {
			opts.OriginPatterns = []string{cfg.AllowedOrigin}
		}
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			log.Warnw("ws accept failed", "room", code, "err", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan game.Event, 16)
		connRef := uuid.NewString()
		log.Infow("client connected", "room", code, "conn", connRef)

		rm.Inbox() <- room.Join{ConnRef: connRef, Outbox: out}
		defer func() {
			rm.Inbox() <- room.Leave{ConnRef: connRef}
			log.Infow("client disconnected", "room", code, "conn", connRef)
		}()

		// Writer goroutine: drains the room's events for this client.
		// Outbox order is emission order, so per-group FIFO holds on
		// the wire as well.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				msg := types.ServerMessage{Type: string(ev.Type), Data: ev.Payload}
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Errorw("marshal event", "type", ev.Type, "err", err)
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (room.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"bad json"}`))
				continue
			}

			cmd, ok := toCommand(cm, connRef)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"unknown type"}`))
				continue
			}

			rm.Inbox() <- room.FromClient{ConnRef: connRef, Cmd: cmd}
		}
	}
}

func toCommand(m types.ClientMessage, connRef string) (game.Command, bool) {
	switch m.Type {
	case "add_player":
		return game.Command{Type: game.CmdAddPlayer, Name: m.Name, ConnRef: connRef}, true
	case "rebind":
		return game.Command{Type: game.CmdRebind, PlayerID: m.PlayerID, OldRef: m.OldRef, ConnRef: connRef}, true
	case "get_players":
		return game.Command{Type: game.CmdListPlayers}, true
	case "start_game":
		return game.Command{Type: game.CmdStartGame, TeamSize: m.TeamSize}, true
	case "reset_game":
		return game.Command{Type: game.CmdResetGame}, true
	case "team_snapshot":
		return game.Command{Type: game.CmdTeamSnapshot, TeamID: m.TeamID}, true
	case "dot_click":
		return game.Command{
			Type:      game.CmdRecordClick,
			PlayerID:  m.PlayerID,
			TeamID:    m.TeamID,
			DotIndex:  m.DotIndex,
			Round:     game.Round(m.Round),
			BatchSize: m.BatchSize,
			TotalSize: m.TotalSize,
		}, true
	case "next_turn":
		return game.Command{
			Type:      game.CmdAdvanceTurn,
			PlayerID:  m.PlayerID,
			TeamID:    m.TeamID,
			Round:     game.Round(m.Round),
			BatchSize: m.BatchSize,
			TotalSize: m.TotalSize,
		}, true
	case "start_new_round":
		return game.Command{
			Type:      game.CmdStartNewRound,
			TeamID:    m.TeamID,
			Round:     game.Round(m.Round),
			NextRound: game.Round(m.NextRound),
			BatchSize: m.BatchSize,
		}, true
	case "fetch_players_time":
		return game.Command{Type: game.CmdPlayersTime, TeamID: m.TeamID, PlayersTime: m.PlayersTime}, true
	default:
		return game.Command{}, false
	}
}
