package handler

import (
	"io"
	"net/http"
	"time"

	"taskboard/internal/realtime"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const sessionBuffer = 16

// EventHandler holds the server-sent event stream through which workflow
// events reach connected users.
type EventHandler struct {
	users    UserService
	registry *realtime.Registry
	ping     time.Duration
}

func NewEventHandler(users UserService, registry *realtime.Registry, ping time.Duration) *EventHandler {
	return &EventHandler{users: users, registry: registry, ping: ping}
}

// Stream registers a session for the caller and relays its events until the
// client goes away or the server shuts down. Only the user's first open
// session is registered; later ones stay open but receive pings only.
//
// @Summary      Open the server-sent event stream
// @Tags         Events
// @Produce      text/event-stream
// @Param        token  query  string  false  "Access token when no Authorization header is sent"
// @Success      200  {string}  string "text/event-stream"
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	session := realtime.NewSession(userID, sessionBuffer)
	registered := h.registry.Add(user.Email, user.DisplayName, session)
	defer h.registry.Remove(session.ID)

	logger := log.WithFields(log.Fields{
		"user_id":    userID,
		"session_id": session.ID,
	})
	logger.WithField("registered", registered).Info("stream connected")
	defer logger.Info("stream disconnected")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("connected", gin.H{"session_id": session.ID, "registered": registered})
	c.Writer.Flush()

	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-session.Events():
			c.SSEvent(e.Name, e.Payload)
			return true
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
