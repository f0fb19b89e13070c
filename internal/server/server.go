// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"earshot/internal/cache"
	"earshot/internal/config"
	"earshot/internal/database"
	"earshot/internal/external"
	"earshot/internal/featureflags"
	"earshot/internal/middleware"
	"earshot/internal/models"
	"earshot/internal/repository"
	"earshot/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	episodeRepo repository.EpisodeRepository
	commentRepo repository.CommentRepository
	bookRepo    repository.BookRepository

	episodeService *service.EpisodeService
	commentService *service.CommentService
	likeService    *service.LikeService
	userService    *service.UserService
	bookService    *service.BookService

	youtube *external.YouTubeClient
	spotify *external.SpotifyClient

	featureFlags *featureflags.Manager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	episodeRepo := repository.NewEpisodeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	bookRepo := repository.NewBookRepository(db)

	prom := middleware.InitMetrics("earshot-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		episodeRepo:    episodeRepo,
		commentRepo:    commentRepo,
		bookRepo:       bookRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.episodeService = service.NewEpisodeService(episodeRepo)
	server.commentService = service.NewCommentService(commentRepo, episodeRepo, server.isAdminByUserID)
	server.likeService = service.NewLikeService(episodeRepo)
	server.userService = service.NewUserService(userRepo, bookRepo)
	server.bookService = service.NewBookService(bookRepo, episodeRepo)

	server.youtube = external.NewYouTubeClient(cfg.YouTubeAPIKey)
	server.spotify = external.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Earshot Backend Metrics Dashboard",
	}))

	// Uploaded images (episode artwork, book covers, profile pictures)
	app.Static("/uploads", s.config.UploadDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)
	auth.Patch("/me", s.AuthRequired(), s.UpdateMe)
	auth.Patch("/profile-picture", s.AuthRequired(), s.UpdateProfilePicture)

	// Public episode routes
	episodes := api.Group("/episodes")
	episodes.Get("/", s.GetEpisodes)
	episodes.Get("/:id/comments", s.GetComments)
	episodes.Get("/:slug", s.GetEpisodeBySlug)

	// Admin episode routes
	episodes.Post("/", s.AuthRequired(), s.AdminRequired(), s.CreateEpisode)
	episodes.Patch("/:id", s.AuthRequired(), s.AdminRequired(), s.UpdateEpisode)
	episodes.Delete("/:id", s.AuthRequired(), s.AdminRequired(), s.DeleteEpisode)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Comment routes
	comments := protected.Group("/comments")
	comments.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comments.Post("/:id/like", s.LikeComment)
	comments.Delete("/:id/like", s.UnlikeComment)
	comments.Delete("/:id", s.DeleteComment)

	// Like routes; count is public, the rest require auth
	api.Get("/likes/:episodeId/count", s.GetLikeCount)
	likes := protected.Group("/likes")
	likes.Get("/:episodeId/status", s.GetLikeStatus)
	likes.Post("/:episodeId", s.LikeEpisode)
	likes.Delete("/:episodeId", s.UnlikeEpisode)

	// User routes (profile-scoped views)
	user := protected.Group("/user")
	user.Get("/comments", s.GetUserComments)
	user.Get("/favorite-episodes", s.GetFavoriteEpisodes)
	user.Get("/favorite-books", s.GetFavoriteBooks)
	user.Post("/favorite-books/:bookId", s.AddFavoriteBook)
	user.Delete("/favorite-books/:bookId", s.RemoveFavoriteBook)

	// Book routes
	books := api.Group("/books")
	books.Get("/", s.GetBooks)
	books.Get("/:id", s.GetBook)
	books.Post("/", s.AuthRequired(), s.AdminRequired(), s.CreateBook)

	// External metadata proxies; flagged off operationally when provider
	// quota runs out.
	ext := api.Group("/external-apis", s.externalAPIsEnabled)
	ext.Get("/youtube/videos/:videoId", s.GetYouTubeVideo)
	ext.Get("/spotify/episodes/:episodeId", s.GetSpotifyEpisode)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// externalAPIsEnabled rejects metadata proxy calls when the external_apis
// flag is switched off.
func (s *Server) externalAPIsEnabled(c *fiber.Ctx) error {
	if !s.featureFlags.EnabledDefault("external_apis", 0, true) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "External metadata lookups are temporarily disabled",
		})
	}
	return c.Next()
}

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":    s.featureFlags.Raw(),
		"resolved": s.featureFlags.Snapshot(currentUserID(c)),
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It accepts only
// Bearer tokens carrying the canonical `sub` claim.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}
		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Reject tokens for accounts that no longer exist.
		if _, err := s.userRepo.GetByID(c.Context(), uint(userID)); err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// NewApp builds the Fiber app all serving paths share. Fiber-native errors
// keep their status; anything else is logged and served as a generic JSON 500.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Earshot API",
		BodyLimit: 10 * 1024 * 1024, // multipart image uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app
	return app
}

// Start builds the app, wires middleware and routes, and begins serving.
func (s *Server) Start() error {
	app := s.NewApp()

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
