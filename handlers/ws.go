package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/spendwise-hq/spendwise-api/middleware"
)

// AlertStreamHandler pushes a change signal to connected clients whenever
// one of their budgets mutates, so the client can re-fetch alerts and
// analysis instead of polling.
type AlertStreamHandler struct {
	m *melody.Melody
}

func NewAlertStreamHandler() *AlertStreamHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024

	// Keep-alive matters behind cloud load balancers that kill idle
	// connections.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("🔌 Alert stream disconnected for user: %v", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ Alert stream error: %v", err)
	})

	return &AlertStreamHandler{m: m}
}

// HandleWS upgrades the request and ties the session to the authenticated
// user.
func (h *AlertStreamHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.m.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// NotifyBudgetsChanged broadcasts a signal to every session of the given
// user. The payload is a hint, not data: clients re-fetch through the REST
// endpoints so they never act on stale alert state.
func (h *AlertStreamHandler) NotifyBudgetsChanged(userID string) {
	msg := []byte(`{"type": "budgets_changed"}`)

	err := h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get("user_id")
		return exists && id == userID
	})
	if err != nil {
		log.Printf("⚠️ Error broadcasting budget change for user %s: %v", userID, err)
	}
}
