package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/handlers/middleware"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/notify"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// NotificationHandler expõe o stream websocket de eventos de documento
type NotificationHandler struct {
	hub      *notify.Hub
	logger   ports.Logger
	upgrader websocket.Upgrader
}

// NewNotificationHandler cria um novo NotificationHandler
func NewNotificationHandler(hub *notify.Hub, logger ports.Logger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS já foi aplicado antes do upgrade
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream faz o upgrade e envia ao cliente os eventos do próprio dono.
// A conexão fecha quando o cliente some ou o contexto termina.
func (h *NotificationHandler) Stream(c *gin.Context) {
	owner := middleware.IdentityEmail(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// o upgrader já escreveu a resposta de erro
		h.logger.Warn("websocket upgrade failed", "owner", owner, "error", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(owner)
	defer cancel()

	// Descartar mensagens do cliente; o stream é só de ida
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.Request.Context().Done():
			return
		}
	}
}
