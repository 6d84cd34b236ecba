package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nightlife-booking-platform/internal/config"
	"nightlife-booking-platform/internal/database"
	"nightlife-booking-platform/internal/handlers"
	"nightlife-booking-platform/internal/middleware"
	"nightlife-booking-platform/internal/repositories"
	"nightlife-booking-platform/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	clubRepo := repositories.NewClubRepository(db.DB)
	promotionRepo := repositories.NewPromotionRepository(db.DB)
	inviteRepo := repositories.NewInviteCodeRepository(db.DB)
	bookingRepo := repositories.NewBookingRepository(db.DB)

	// Initialize services
	authService := services.NewAuthService(inviteRepo, cfg.Session.TTL)
	clubService := services.NewClubService(clubRepo, promotionRepo)
	registry := services.NewTicketRegistry(bookingRepo, cfg.Booking.KeyMode)
	go registry.Run(ctx, time.Minute)
	payments := services.NewStubPaymentService()

	// Sessions
	sessionStore := middleware.NewCookieStore(cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction())
	sessionManager := middleware.NewSessionManager(sessionStore, cfg.Session.TTL)

	inviteLimiter := middleware.NewInviteRateLimiter(cfg.RateLimit.InviteMaxAttempts, cfg.RateLimit.InviteWindow)
	defer inviteLimiter.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessionManager, registry)
	clubHandler := handlers.NewClubHandler(clubService)
	ticketHandler := handlers.NewTicketHandler(registry, clubService, payments, cfg.Booking.UnitPrice)

	r := chi.NewRouter()

	// Middleware
	if cfg.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(sessionManager.LoadSession)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.InviteRateLimit(inviteLimiter)).Post("/invite", authHandler.VerifyInvite)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)
	})

	// Catalog routes
	r.Get("/clubs", clubHandler.ListClubs)
	r.Get("/clubs/search", clubHandler.SearchClubs)
	r.Get("/clubs/category/{category}", clubHandler.ClubsByCategory)
	r.Get("/clubs/{id}", clubHandler.GetClub)
	r.Get("/promotions", clubHandler.ListPromotions)

	// Ticket routes
	r.Route("/ticket", func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Get("/", ticketHandler.GetTicket)
		r.Delete("/", ticketHandler.ClearTicket)
		r.Post("/items", ticketHandler.AddItem)
		r.Delete("/items/{id}", ticketHandler.RemoveItem)
		r.Post("/items/{id}/count", ticketHandler.UpdateCount)
		r.Post("/refresh", ticketHandler.RefreshTicket)
		r.Post("/checkout", ticketHandler.Checkout)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","service":"nightlife-booking-platform"}`))
			return
		}
		w.Write([]byte(`{"status":"ok","service":"nightlife-booking-platform"}`))
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server starting on %s (Environment: %s)", server.Addr, cfg.Server.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
