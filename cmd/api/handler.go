package api

import (
	authDelivery "cinetrack-backend/internal/auth/delivery"
	authUsecasePkg "cinetrack-backend/internal/auth/usecase"
	bookmarkDelivery "cinetrack-backend/internal/bookmark/delivery"
	bookmarkUsecasePkg "cinetrack-backend/internal/bookmark/usecase"
	catalogDelivery "cinetrack-backend/internal/catalog/delivery"
	catalogUsecasePkg "cinetrack-backend/internal/catalog/usecase"
	profileDelivery "cinetrack-backend/internal/profile/delivery"
	profileUsecasePkg "cinetrack-backend/internal/profile/usecase"
	sessionDelivery "cinetrack-backend/internal/session/delivery"
	sessionUsecasePkg "cinetrack-backend/internal/session/usecase"
	"cinetrack-backend/pkg/config"
	"cinetrack-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecasePkg.AuthUsecase
	config         *config.Config
	authHandler    *authDelivery.AuthHandler
	profileHandler *profileDelivery.ProfileHandler
	bookmarkHand   *bookmarkDelivery.BookmarkHandler
	catalogHandler *catalogDelivery.CatalogHandler
	eventsHandler  *sessionDelivery.EventsHandler
}

func NewHandler(authUc authUsecasePkg.AuthUsecase, profileUc profileUsecasePkg.ProfileUsecase, bookmarkUc bookmarkUsecasePkg.BookmarkUsecase, catalogUc catalogUsecasePkg.CatalogUsecase, registry *sessionUsecasePkg.Registry, sseManager *sse.Manager, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		config:         cfg,
		authHandler:    authDelivery.NewAuthHandler(authUc),
		profileHandler: profileDelivery.NewProfileHandler(profileUc),
		bookmarkHand:   bookmarkDelivery.NewBookmarkHandler(bookmarkUc),
		catalogHandler: catalogDelivery.NewCatalogHandler(catalogUc),
		eventsHandler:  sessionDelivery.NewEventsHandler(registry, authUc.Bus(), sseManager),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.profileHandler, h.bookmarkHand, h.catalogHandler, h.eventsHandler)

	return r.Run(addr)
}
