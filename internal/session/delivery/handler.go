package delivery

import (
	"net/http"

	authdelivery "cinetrack-backend/internal/auth/delivery"
	authusecase "cinetrack-backend/internal/auth/usecase"
	"cinetrack-backend/internal/session/usecase"
	"cinetrack-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	registry *usecase.Registry
	bus      *authusecase.IdentityBus
	manager  *sse.Manager
}

func NewEventsHandler(registry *usecase.Registry, bus *authusecase.IdentityBus, manager *sse.Manager) *EventsHandler {
	return &EventsHandler{
		registry: registry,
		bus:      bus,
		manager:  manager,
	}
}

// Stream serves the live merged-user feed for the authenticated client.
// Each published record arrives as a "user" SSE event; `data: null` means
// signed out.
func (h *EventsHandler) Stream(c *gin.Context) {
	identity := authdelivery.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	// The bus loses its state across restarts. The access token was just
	// validated, so re-announce the session before attaching.
	if h.bus.Current(identity.UID) == nil {
		h.bus.Publish(identity.UID, identity)
	}

	h.registry.Acquire(identity.UID)
	defer h.registry.Release(identity.UID)

	h.manager.ServeHTTP(c, identity.UID)
}
