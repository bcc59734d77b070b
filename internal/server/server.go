package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"scentstock/internal/config"
	custommiddleware "scentstock/internal/middleware"
	"scentstock/internal/repository"
	"scentstock/internal/service"
	"scentstock/internal/storage"
	"scentstock/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	isDevelopment := cfg.Server.Env == "development"

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, isDevelopment))

	// Rate limiting, same budget as the original frontend expects
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "Perfume Catalog API",
		})
	})

	// Initialize repositories
	perfumeRepo := repository.NewPerfumeRepository(db)

	// Initialize services
	perfumeService := service.NewPerfumeService(perfumeRepo)

	// Initialize image storage
	imageStore, err := storage.NewDiskImageStore(cfg.Upload.Dir, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	// Initialize handlers
	perfumeHandler := transport.NewPerfumeHandler(perfumeService, logger, cfg.Server.Env)
	uploadHandler := transport.NewUploadHandler(imageStore, logger)

	// Register routes
	perfumeHandler.RegisterRoutes(router)
	uploadHandler.RegisterRoutes(router)

	// Serve uploaded images statically
	router.Handle("/uploads/*", http.StripPrefix("/uploads", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// JSON 404 for unknown routes
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithErrorMessage(w, http.StatusNotFound,
			"endpoint not found", fmt.Sprintf("path %s does not exist", r.URL.Path))
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
