package game

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Hub tracks the websocket viewers of every game and pushes a state
// snapshot to all of them after each change.
type Hub struct {
	log  *zap.SugaredLogger
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{log: log, subs: make(map[string]map[*subscriber]struct{})}
}

func (h *Hub) subscribe(key string, conn *websocket.Conn) *subscriber {
	s := &subscriber{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscriber]struct{})
	}
	h.subs[key][s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(key string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[key], s)
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

// Broadcast sends v to every viewer of key. Viewers that fail to receive
// it are dropped.
func (h *Hub) Broadcast(key string, v any) {
	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[key]))
	for s := range h.subs[key] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.writeJSON(v); err != nil {
			h.log.Errorf("write to viewer of %s: %v", key, err)
			h.unsubscribe(key, s)
			s.conn.Close()
		}
	}
}

// Viewers counts the open connections for key.
func (h *Hub) Viewers(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[key])
}
