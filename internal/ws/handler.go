package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub    *Hub
	engine Engine
	log    zerolog.Logger
}

func NewHandler(hub *Hub, eng Engine, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, engine: eng, log: log.With().Str("component", "ws").Logger()}
}

// QueueWebSocketHandler обновляет соединение до WebSocket и подключает наблюдателя.
// URL-пример: /ws
func (h *Handler) QueueWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту ошибкой.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h.hub, conn, h.engine, h.log)
	ctx := c.Request.Context()

	go client.writePump()
	if err := h.engine.Connect(ctx, client); err != nil {
		close(client.Send)
		return
	}
	client.log.Debug().Str("remote", c.Request.RemoteAddr).Msg("client connected")

	client.readPump(ctx)
}
