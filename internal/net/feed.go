package net

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Client consumes a topology feed over WebSocket. Decoded messages are
// delivered on the read goroutine through OnMessage; the caller decides
// how to marshal them onto its UI loop.
type Client struct {
	url string

	OnMessage func(Message)
	OnStatus  func(string)

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient(url string) *Client {
	return &Client{url: url}
}

// URL returns the feed endpoint this client dials.
func (c *Client) URL() string {
	return c.url
}

// Connect dials the feed and starts the read loop. Safe to call again
// after a disconnect; an existing connection is closed first.
func (c *Client) Connect() error {
	c.Close()

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dial feed %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.status(fmt.Sprintf("Connected to %s", c.url))
	go c.readLoop(conn)
	return nil
}

// Close tears down the current connection, if any.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.WithError(err).Info("feed disconnected")
			c.status(fmt.Sprintf("Feed disconnected: %v", err))
			return
		}

		msg, err := Decode(data)
		if err != nil {
			// Malformed frames are dropped; the feed stays up.
			log.WithError(err).Warn("skipping feed message")
			continue
		}

		log.WithFields(log.Fields{
			"type":    msg.Type,
			"senders": len(msg.Senders),
		}).Debug("feed message")

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

func (c *Client) status(text string) {
	if c.OnStatus != nil {
		c.OnStatus(text)
	}
}
