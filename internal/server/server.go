package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/config"
	custommiddleware "github.com/madhupandey29/shopy-admin-api/internal/middleware"
	"github.com/madhupandey29/shopy-admin-api/internal/service"
	"github.com/madhupandey29/shopy-admin-api/internal/session"
	"github.com/madhupandey29/shopy-admin-api/internal/transport"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the catalog client, draft stores, services and handlers
// into one HTTP server. db may be nil unless the draft store is postgres.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Upstream catalog client
	client := catalog.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	productAPI := catalog.NewProductAPI(client)
	groupCodeAPI := catalog.NewGroupCodeAPI(client)
	taxonomyAPI := catalog.NewTaxonomyAPI(client)

	// Draft session storage
	drafts := newDraftStore(cfg, db, redisClient, logger)
	files := session.NewFileStore()

	// Services
	workflowService := service.NewWorkflowService(productAPI, taxonomyAPI, drafts, files)
	productService := service.NewProductService(productAPI)
	groupCodeService := service.NewGroupCodeService(groupCodeAPI)

	// Handlers
	workflowHandler := transport.NewWorkflowHandler(workflowService, logger)
	productHandler := transport.NewProductHandler(productService, workflowService, logger)
	groupCodeHandler := transport.NewGroupCodeHandler(groupCodeService, logger)

	router.Group(func(r chi.Router) {
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: 100,
				Window:            time.Minute,
				KeyPrefix:         "ratelimit:api",
			}, logger))
		}

		workflowHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
		groupCodeHandler.RegisterRoutes(r)
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

	return server
}

func newDraftStore(cfg *config.Config, db *sql.DB, redisClient *redis.Client, logger *zap.Logger) session.Store {
	ttl := time.Duration(cfg.Draft.TTLMinutes) * time.Minute

	switch cfg.Draft.Store {
	case "postgres":
		if db != nil {
			return session.NewPostgresStore(db)
		}
		logger.Warn("Draft store set to postgres but no database connection, falling back to memory")
		return session.NewMemoryStore()
	case "memory":
		return session.NewMemoryStore()
	default:
		if redisClient != nil {
			return session.NewRedisStore(redisClient, ttl)
		}
		logger.Warn("Draft store set to redis but no redis connection, falling back to memory")
		return session.NewMemoryStore()
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
