package ws

import (
	"context"
	"encoding/json"
	"time"

	"court_queue/internal/engine"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Engine описывает, что клиенту нужно от цикла команд.
type Engine interface {
	Submit(ctx context.Context, cmd engine.Command) error
	Connect(ctx context.Context, s engine.Session) error
	Disconnect(ctx context.Context, s engine.Session) error
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	id     string
	engine Engine
	log    zerolog.Logger

	// capability читается и меняется только в цикле engine.
	capability string
}

func newClient(hub *Hub, conn *websocket.Conn, eng Engine, log zerolog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		id:     id,
		engine: eng,
		log:    log.With().Str("client", id).Logger(),
	}
}

func (c *Client) ID() string                 { return c.id }
func (c *Client) Capability() string         { return c.capability }
func (c *Client) SetCapability(token string) { c.capability = token }

// readPump читает команды из WebSocket-соединения и передаёт их в engine.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := c.engine.Disconnect(ctx, c); err != nil {
			c.Hub.Detach(c)
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("connection closed")
			}
			return
		}

		var cmd engine.Command
		if err := json.Unmarshal(message, &cmd); err != nil || cmd.Name == "" {
			c.Hub.Reply(c, engine.Event{Name: engine.EventErrorMessage, Data: "Malformed message."})
			continue
		}
		cmd.From = c
		if err := c.engine.Submit(ctx, cmd); err != nil {
			return
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрыт хабом.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			// Отправка ping-сообщения для поддержания соединения.
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
