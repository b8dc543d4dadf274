package room

import (
	"context"

	"go.uber.org/zap"

	"github.com/jemis-lakhani/coingame-backend/internal/game"
)

type Msg interface{ isRoomMsg() }

// FromClient carries one decoded client command into the room.
type FromClient struct {
	ConnRef string
	Cmd     game.Command
}

func (FromClient) isRoomMsg() {}

type Join struct {
	ConnRef string
	Outbox  chan game.Event // where this connection receives events
}

func (Join) isRoomMsg() {}

type Leave struct{ ConnRef string }

func (Leave) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

// View reflects internal state for tests without data races.
type View struct {
	NumClients int
	Players    []game.PlayerView
}

// Room owns one game session and the connections subscribed to it. A
// single goroutine drains the inbox, so commands are applied one at a
// time and session state needs no locking.
type Room struct {
	code    string
	inbox   chan Msg
	session *game.Session
	clients map[string]chan game.Event
	log     *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, code string, log *zap.SugaredLogger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:    code,
		inbox:   make(chan Msg, 64),
		session: game.NewSession(code),
		clients: make(map[string]chan game.Event),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

// Inbox exposes the room's message channel to the transport layer and
// to tests.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) Code() string { return r.code }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.clients[msg.ConnRef] = msg.Outbox
				// New connections see the lobby immediately.
				r.send(msg.ConnRef, game.Event{
					Type:    game.EvtPlayerList,
					Payload: game.PlayerList{Players: r.session.ListPlayers()},
				})

			case Leave:
				// Closing the outbox ends the connection's writer.
				if ch, ok := r.clients[msg.ConnRef]; ok {
					close(ch)
					delete(r.clients, msg.ConnRef)
				}

			case FromClient:
				evs, err := r.session.Apply(msg.Cmd)
				if err != nil {
					r.log.Warnw("command rejected",
						"room", r.code, "cmd", msg.Cmd.Type, "err", err)
					r.send(msg.ConnRef, game.Event{
						Type:    game.EvtError,
						Payload: game.ErrorAck{Message: err.Error()},
					})
					break
				}
				r.dispatch(evs)

			case GetState:
				msg.Reply <- View{
					NumClients: len(r.clients),
					Players:    r.session.ListPlayers(),
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// dispatch resolves each event's audience to connections and fans the
// event out. Group membership is derived from session state so that a
// team restart or reconnect can never leave stale subscriptions behind.
func (r *Room) dispatch(evs []game.Event) {
	for _, ev := range evs {
		switch ev.To.Scope {
		case game.ScopeTeam:
			for _, ref := range r.session.TeamConnRefs(ev.To.TeamID) {
				r.send(ref, ev)
			}
		case game.ScopePlayer:
			if ref, ok := r.session.PlayerConnRef(ev.To.PlayerID); ok {
				r.send(ref, ev)
			}
		default: // lobby-wide
			for ref := range r.clients {
				r.send(ref, ev)
			}
		}
	}
}

// send delivers one event to one connection. Events to the same
// connection keep emission order; a client too slow to drain its outbox
// is dropped rather than allowed to stall the room.
func (r *Room) send(ref string, ev game.Event) {
	ch, ok := r.clients[ref]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		r.log.Warnw("dropping slow client", "room", r.code, "conn", ref)
		close(ch)
		delete(r.clients, ref)
	}
}

func (r *Room) shutdown() {
	for ref, ch := range r.clients {
		close(ch)
		delete(r.clients, ref)
	}
	r.cancel()
}
