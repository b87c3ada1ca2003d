package web

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/codefionn/rechenschnell/internal/consts"
	"github.com/codefionn/rechenschnell/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = consts.WebSocketPongWait

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 16
)

// Client is one websocket connection. Every text frame it receives is
// evaluated as an expression and answered with an EvaluateResponse.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan *EvaluateResponse

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a new websocket client
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id, _ := generateClientID()

	return &Client{
		ID:   id,
		hub:  hub,
		conn: conn,
		send: make(chan *EvaluateResponse, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ReadPump reads expressions from the connection until it closes
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(consts.MaxRequestBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("WebSocket read error: %v", err)
			}
			break
		}
		if messageType != websocket.TextMessage {
			logger.Debug("Client %s sent non-text frame, ignoring", c.ID)
			continue
		}

		input := strings.TrimRight(string(message), "\r\n")
		resp := evaluate(input)
		if resp.Failed() {
			logger.Debug("Client %s: %q failed: %s", c.ID, input, resp.Error)
		}
		c.sendResponse(resp)
	}
}

// WritePump writes responses to the connection and keeps it alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(message)
			if err != nil {
				logger.Error("Failed to marshal message: %v", err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Error("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendResponse queues a response for WritePump
func (c *Client) sendResponse(msg *EvaluateResponse) {
	select {
	case <-c.done:
		logger.Debug("Client %s closed, dropping response", c.ID)
	case c.send <- msg:
	default:
		logger.Warn("Client send channel full, dropping message")
	}
}

// close stops WritePump; safe to call more than once
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// generateClientID generates a random client ID
func generateClientID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
