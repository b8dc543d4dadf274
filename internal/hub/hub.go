package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/jemis-lakhani/coingame-backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Code  string
	Reply chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type EnsureRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Hub owns the set of live rooms, keyed by code. One goroutine serves
// the inbox, so room creation and teardown never race.
type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	log    *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, log *zap.SugaredLogger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if r := h.rooms[msg.Code]; r != nil {
					msg.Reply <- r
					break
				}
				r := room.New(h.ctx, msg.Code, h.log)
				h.rooms[msg.Code] = r
				h.log.Infow("room created", "code", msg.Code)
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				if r := h.rooms[msg.Code]; r != nil {
					msg.Reply <- r
					break
				}
				r := room.New(h.ctx, msg.Code, h.log)
				h.rooms[msg.Code] = r
				h.log.Infow("room created", "code", msg.Code)
				msg.Reply <- r

			case RemoveRoom:
				// Tearing a room down releases its session state; stale
				// rooms must not accumulate for the process lifetime.
				if r := h.rooms[msg.Code]; r != nil {
					r.Inbox() <- room.Shutdown{}
					delete(h.rooms, msg.Code)
					h.log.Infow("room removed", "code", msg.Code)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, r := range h.rooms {
		r.Inbox() <- room.Shutdown{}
	}
	clear(h.rooms)
	h.cancel()
}
