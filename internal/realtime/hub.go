// Package realtime fans team events out to websocket subscribers.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lalith-99/lockerroom/internal/models"
	"go.uber.org/zap"
)

const (
	EventMessageCreated = "message.created"
	EventMessageUpdated = "message.updated"
	EventMessageDeleted = "message.deleted"
	EventTeamDeleted    = "team.deleted"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Event struct {
	Type      string              `json:"type"`
	TeamID    int64               `json:"team_id"`
	MessageID int64               `json:"message_id,omitempty"`
	Message   *models.TeamMessage `json:"message,omitempty"`
}

// Subscription is one listener on a team. Events is closed when the
// subscription is dropped, either by Unsubscribe or because it fell behind.
type Subscription struct {
	teamID int64
	events chan Event
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

type Hub struct {
	mu       sync.RWMutex
	subs     map[int64]map[*Subscription]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[int64]map[*Subscription]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

func (h *Hub) Subscribe(teamID int64) *Subscription {
	sub := &Subscription{teamID: teamID, events: make(chan Event, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[teamID] == nil {
		h.subs[teamID] = make(map[*Subscription]struct{})
	}
	h.subs[teamID][sub] = struct{}{}
	return sub
}

// Unsubscribe is safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.teamID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	close(sub.events)
	if len(set) == 0 {
		delete(h.subs, sub.teamID)
	}
}

// Subscribers returns how many listeners a team has.
func (h *Hub) Subscribers(teamID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[teamID])
}

// Publish never blocks. A subscriber whose buffer is full is dropped.
func (h *Hub) Publish(teamID int64, event Event) {
	event.TeamID = teamID

	var slow []*Subscription
	h.mu.RLock()
	for sub := range h.subs[teamID] {
		select {
		case sub.events <- event:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warn("dropping slow subscriber", zap.Int64("team_id", teamID))
		h.Unsubscribe(sub)
	}
}

// Serve upgrades the request and streams teamID's events until the client
// goes away, the subscriber falls behind or the team is deleted. Callers
// authorize the request first.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, teamID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := h.Subscribe(teamID)
	done := make(chan struct{})

	go h.readLoop(conn, sub, done)
	h.writeLoop(conn, sub, done)
	return nil
}

// readLoop only exists to process control frames and notice disconnects;
// clients never send data.
func (h *Hub) readLoop(conn *websocket.Conn, sub *Subscription, done chan struct{}) {
	defer close(done)
	defer h.Unsubscribe(sub)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, sub *Subscription, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.Unsubscribe(sub)
		_ = conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
			if ev.Type == EventTeamDeleted {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "team deleted"))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
