package httpinterface

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// EventHub fans the published registry events out to the websocket clients
// connected to the events endpoint.
type EventHub struct {
	upgrader websocket.Upgrader

	lock  sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Broadcast sends a published message to every connected client. It never
// fails, clients that cannot be written to are dropped.
func (h *EventHub) Broadcast(topic, message string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	for conn := range h.conns {
		if err := conn.WriteMessage(
			websocket.TextMessage, []byte(message),
		); err != nil {
			log.WithError(err).Debugf(
				"dropping events client %s", conn.RemoteAddr(),
			)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *EventHub) serveWs(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade events connection")
		return
	}

	h.addConn(conn)
	go h.readUntilClosed(conn)
}

// readUntilClosed drains the incoming side of the connection to detect the
// client going away. Whatever the client sends is discarded.
func (h *EventHub) readUntilClosed(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.removeConn(conn)
			conn.Close()
			return
		}
	}
}

func (h *EventHub) addConn(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *EventHub) removeConn(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.conns, conn)
}

func (h *EventHub) close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	for conn := range h.conns {
		//nolint
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
}
