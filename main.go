package main

import (
	"context"
	"os"

	api "cinetrack-backend/cmd/api"
	authdomain "cinetrack-backend/internal/auth/domain"
	authRepo "cinetrack-backend/internal/auth/repository"
	authUsecase "cinetrack-backend/internal/auth/usecase"
	bookmarkUsecase "cinetrack-backend/internal/bookmark/usecase"
	catalogRepo "cinetrack-backend/internal/catalog/repository"
	catalogUsecase "cinetrack-backend/internal/catalog/usecase"
	profileRepo "cinetrack-backend/internal/profile/repository"
	profileUsecase "cinetrack-backend/internal/profile/usecase"
	sessionDomain "cinetrack-backend/internal/session/domain"
	sessionUsecase "cinetrack-backend/internal/session/usecase"
	"cinetrack-backend/pkg/config"
	"cinetrack-backend/pkg/database"
	"cinetrack-backend/pkg/firebase"
	"cinetrack-backend/pkg/logger"
	"cinetrack-backend/pkg/sse"
	"cinetrack-backend/pkg/tmdb"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(os.Stderr)

	// Initialize database for refresh tokens
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	if err := db.AutoMigrate(&authdomain.RefreshToken{}); err != nil {
		log.Fatal("failed to migrate database", "err", err)
	}

	// Initialize Firebase clients (auth provider + profile store)
	ctx := context.Background()
	fb, err := firebase.NewClients(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
	if err != nil {
		log.Fatal("failed to initialize Firebase", "err", err)
	}
	defer fb.Close()

	// Initialize repositories (dependency injection)
	tokenRepo := authRepo.NewTokenRepository(db)
	verifier := authRepo.NewFirebaseVerifier(fb.Auth)
	profileStore := profileRepo.NewFirestoreStore(fb.Firestore)
	genreCache := catalogRepo.NewFileGenreCache(cfg.CacheDir)

	// Initialize SSE manager
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Initialize use cases (dependency injection)
	bus := authUsecase.NewIdentityBus()
	authUc := authUsecase.NewAuthUsecase(verifier, tokenRepo, profileStore, bus, cfg, logger.Component(log, "auth"))
	profileUc := profileUsecase.NewProfileUsecase(profileStore)
	bookmarkUc := bookmarkUsecase.NewBookmarkUsecase(profileStore, logger.Component(log, "bookmark"))

	tmdbClient := tmdb.New(cfg.TMDBBaseURL, cfg.TMDBAPIToken, nil)
	catalogUc := catalogUsecase.NewCatalogUsecase(tmdbClient, genreCache, logger.Component(log, "catalog"))

	// One synchronizer per connected user, fanning out over SSE
	registry := sessionUsecase.NewRegistry(bus, profileStore, func(uid string, user *sessionDomain.User) {
		sseManager.SendToUser(uid, "user", user)
	}, logger.Component(log, "session"))
	defer registry.Close()

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, profileUc, bookmarkUc, catalogUc, registry, sseManager, cfg)

	log.Info("server starting", "port", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "err", err)
	}
}
