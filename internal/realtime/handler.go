package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/light-bringer/catalog-service/internal/logging"
)

// Handler upgrades HTTP requests to websocket subscriptions and hands them
// to the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket endpoint handler. allowedOrigins gates
// the upgrade; "*" permits any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		origins[o] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if wildcard {
					return true
				}
				return origins[r.Header.Get("Origin")]
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		logging.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade rejected")
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.Register(client)
	client.Start()
}
