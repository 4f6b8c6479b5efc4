package server

import (
	"context"
	"log"
	"net/http"

	"codeclimb/configs"
	"codeclimb/internal/dbs"
	"codeclimb/internal/handlers"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/repositories"
	"codeclimb/internal/services"

	"github.com/gin-gonic/gin"
)

func StartGinServer() {
	config := configs.LoadConfig()

	logger.InitLogger(config.IsProduction())
	defer logger.SyncLogger()

	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := dbs.Init(config)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	redisClient, err := dbs.InitRedis(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	cache := services.NewRedisCache(redisClient)
	tokenService := services.NewTokenService(config.JWTSecret)
	judgeClient := services.NewJudge0Client(config)
	limiter := services.NewRateLimiter(redisClient, config.RateLimitWindow, config.RateLimitMax)

	userRepo := repositories.NewUserRepository(db)
	problemRepo := repositories.NewProblemRepository(db, cache)
	submissionRepo := repositories.NewSubmissionRepository(db)
	playlistRepo := repositories.NewPlaylistRepository(db)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(config, tokenService, judgeClient, limiter,
		userRepo, problemRepo, submissionRepo, playlistRepo)

	port := ":" + config.ServerPort
	log.Printf("Starting server on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// NewRouter wires middlewares and resource handlers onto a gin engine.
func NewRouter(
	config *configs.Config,
	tokenService *services.TokenService,
	judgeClient services.JudgeClient,
	limiter *services.RateLimiter,
	userRepo repositories.UserRepository,
	problemRepo repositories.ProblemRepository,
	submissionRepo repositories.SubmissionRepository,
	playlistRepo repositories.PlaylistRepository,
) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.ErrorHandlerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	api.Use(middlewares.RateLimitMiddleware(limiter))

	auth := middlewares.AuthMiddleware(tokenService, userRepo)
	admin := middlewares.RequireAdmin(userRepo)

	handlers.NewAuthHandler(userRepo, tokenService, config).RegisterRoutes(api, auth)
	handlers.NewProblemHandler(problemRepo, judgeClient).RegisterRoutes(api, auth, admin)
	handlers.NewExecutionHandler(judgeClient, submissionRepo).RegisterRoutes(api, auth)
	handlers.NewSubmissionHandler(submissionRepo).RegisterRoutes(api, auth)
	handlers.NewPlaylistHandler(playlistRepo).RegisterRoutes(api, auth)

	return router
}
