package api

import (
	"net/http"

	"cinetrack-backend/internal/auth/delivery"
	authUsecase "cinetrack-backend/internal/auth/usecase"
	bookmarkDelivery "cinetrack-backend/internal/bookmark/delivery"
	catalogDelivery "cinetrack-backend/internal/catalog/delivery"
	profileDelivery "cinetrack-backend/internal/profile/delivery"
	sessionDelivery "cinetrack-backend/internal/session/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, profileHandler *profileDelivery.ProfileHandler, bookmarkHandler *bookmarkDelivery.BookmarkHandler, catalogHandler *catalogDelivery.CatalogHandler, eventsHandler *sessionDelivery.EventsHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Live merged-user stream
		api.GET("/events", delivery.AuthMiddleware(authUc), eventsHandler.Stream)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/session", authHandler.CreateSession)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(delivery.AuthMiddleware(authUc))
		{
			profile.GET("", profileHandler.Get)
			profile.PUT("", profileHandler.Update)
		}

		// Bookmark routes (protected)
		bookmarks := api.Group("/bookmarks")
		bookmarks.Use(delivery.AuthMiddleware(authUc))
		{
			bookmarks.GET("", bookmarkHandler.List)
			bookmarks.POST("/toggle", bookmarkHandler.Toggle)
			bookmarks.POST("/batch-remove", bookmarkHandler.BatchRemove)
		}

		// Catalog routes (public)
		catalog := api.Group("/catalog")
		{
			catalog.GET("/:kind/discover", catalogHandler.Discover)
			catalog.GET("/:kind/search", catalogHandler.Search)
			catalog.GET("/:kind/genres", catalogHandler.Genres)
		}

		titles := api.Group("/titles")
		{
			titles.GET("/:kind/:id", catalogHandler.Details)
			titles.GET("/:kind/:id/credits", catalogHandler.Credits)
			titles.GET("/:kind/:id/reviews", catalogHandler.Reviews)
			titles.GET("/:kind/:id/similar", catalogHandler.Similar)
		}
	}
}
