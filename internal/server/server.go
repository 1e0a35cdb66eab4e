// Package server contains the HTTP handlers and route/middleware wiring for
// the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"devconnect/internal/auth"
	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/github"
	"devconnect/internal/middleware"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *mongo.Database
	redis          *redis.Client
	issuer         *auth.Issuer
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	github         *github.Client
	userService    *service.UserService
	profileService *service.ProfileService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with stub repositories swapped in afterwards.
func NewServerWithDeps(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *Server {
	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		issuer:         issuer,
		promMiddleware: middleware.InitMetrics("devconnect-api"),
		github:         github.NewClient(cfg.GithubAPIURL),
	}

	if db != nil {
		server.userRepo = repository.NewUserRepository(db)
		server.profileRepo = repository.NewProfileRepository(db)
		server.postRepo = repository.NewPostRepository(db)
	}
	server.buildServices()

	return server
}

// buildServices (re)constructs the service layer from the current
// repositories. Tests call SetRepos which goes through here.
func (s *Server) buildServices() {
	s.userService = service.NewUserService(s.userRepo, s.profileRepo, s.postRepo, s.issuer)
	s.profileService = service.NewProfileService(s.profileRepo)
	s.postService = service.NewPostService(s.postRepo, s.userRepo)
}

// SetRepos swaps the repository implementations. Test-only seam.
func (s *Server) SetRepos(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, postRepo repository.PostRepository) {
	s.userRepo = userRepo
	s.profileRepo = profileRepo
	s.postRepo = postRepo
	s.buildServices()
}

// Issuer exposes the token issuer so tests can mint valid tokens.
func (s *Server) Issuer() *auth.Issuer {
	return s.issuer
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before anything that can short-circuit, so browsers get CORS
	// headers on error responses too.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.TokenHeader,
		MaxAge:       86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	authRequired := middleware.AuthRequired(s.issuer)
	// Tighter per-resource limit on the credential endpoints
	credLimit := middleware.RateLimit(s.redis, 20, time.Minute, "credentials")

	// Users & auth
	api.Post("/users", credLimit, s.Register)
	api.Post("/auth", credLimit, s.Login)
	api.Get("/auth", authRequired, s.CurrentUser)

	// Profiles
	profile := api.Group("/profile")
	profile.Get("/", s.ListProfiles)
	profile.Post("/", authRequired, s.UpsertProfile)
	profile.Get("/me", authRequired, s.MyProfile)
	profile.Get("/user/:id", s.ProfileByUser)
	profile.Delete("/", authRequired, s.DeleteAccount)
	profile.Put("/experience", authRequired, s.AddExperience)
	profile.Delete("/experience/:id", authRequired, s.RemoveExperience)
	profile.Put("/education", authRequired, s.AddEducation)
	profile.Delete("/education/:id", authRequired, s.RemoveEducation)
	profile.Get("/github/:username", s.GithubRepos)

	// Posts (all private)
	posts := api.Group("/posts", authRequired)
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
	posts.Put("/like/:id", s.LikePost)
	posts.Put("/unlike/:id", s.UnlikePost)
	posts.Post("/comments/:id", s.AddComment)
	posts.Delete("/comments/:id/:commentId", s.DeleteComment)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the backing stores are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "mongo": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		return s.db.Client().Disconnect(ctx)
	}
	return nil
}
