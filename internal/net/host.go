package net

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// shareClient wraps one viewer connection. gorilla/websocket allows at
// most one concurrent writer per connection, so every write goes
// through the client's mutex.
type shareClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *shareClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Host re-serves this viewer's topology to other viewers. Each client
// gets the current snapshot on connect, then every broadcast message.
// Broadcast may be called from any number of goroutines.
type Host struct {
	// Snapshot supplies the initial sync message for a new client.
	Snapshot func() Message

	upgrader websocket.Upgrader
	mu       sync.RWMutex
	conns    map[*shareClient]bool
}

func NewHost() *Host {
	return &Host{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// LAN sharing between viewers; no origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*shareClient]bool),
	}
}

// Listen serves the share endpoint. Blocks until the server fails.
func (h *Host) Listen(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", h.handleFeed)
	log.WithField("port", port).Info("share host listening")
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

// ClientCount returns the number of connected viewers.
func (h *Host) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends a message to every connected viewer. Write failures
// only detach the failing client.
func (h *Host) Broadcast(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		log.WithError(err).Error("cannot encode broadcast")
		return
	}

	h.mu.RLock()
	clients := make([]*shareClient, 0, len(h.conns))
	for c := range h.conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			log.WithError(err).Warn("dropping share client")
			h.remove(c)
		}
	}
}

func (h *Host) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("share upgrade failed")
		return
	}
	client := &shareClient{conn: conn}

	h.mu.Lock()
	h.conns[client] = true
	h.mu.Unlock()
	log.WithField("remote", conn.RemoteAddr().String()).Info("share client connected")

	if h.Snapshot != nil {
		if data, err := Encode(h.Snapshot()); err == nil {
			if err := client.send(data); err != nil {
				h.remove(client)
				return
			}
		}
	}

	// Clients are read-only viewers; drain until they hang up.
	go func() {
		defer h.remove(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Host) remove(client *shareClient) {
	h.mu.Lock()
	_, ok := h.conns[client]
	delete(h.conns, client)
	h.mu.Unlock()
	if ok {
		client.conn.Close()
		log.WithField("remote", client.conn.RemoteAddr().String()).Info("share client removed")
	}
}
