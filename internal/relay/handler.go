package relay

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/logger"
)

// Handler upgrades GET /ws and serves the socket until it closes.
// allowedOrigins lists accepted Origin headers; "*" accepts any.
func Handler(hub *Hub, auth Authenticator, allowedOrigins []string) http.HandlerFunc {
	if auth == nil {
		auth = AllowAll
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     OriginChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error
			log.Warn(LogMsgUpgradeFailed, "error", err, "origin", r.Header.Get("Origin"))
			return
		}

		c := newConn(uuid.NewString(), ws, hub, auth, log)
		if !hub.register(c) {
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, MsgShuttingDown))
			ws.Close()
			return
		}
		log.Info(LogMsgClientConnected, "conn_id", c.id, "total_clients", hub.ConnectionCount())

		done := make(chan struct{})
		go c.writePump(done)

		c.reply(domain.FrameConnection, "", MsgConnected)
		c.readPump(r.Context())
		<-done

		log.Info(LogMsgClientDisconnected, "conn_id", c.id, "total_clients", hub.ConnectionCount())
	}
}

// OriginChecker builds a websocket.Upgrader CheckOrigin func. Requests without
// an Origin header come from non-browser clients and are accepted.
func OriginChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	allowAll := false
	for _, o := range allowed {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o == "*" {
			allowAll = true
		}
		set[o] = true
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return set[strings.TrimRight(strings.ToLower(origin), "/")]
	}
}
