package routes

import (
	"context"
	"fmt"
	"time"

	"powercup-backend/internal/api/handlers"
	"powercup-backend/internal/api/middleware"
	"powercup-backend/internal/auth"
	"powercup-backend/internal/config"
	"powercup-backend/internal/repository"
	"powercup-backend/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Dependencies are the external services the router is wired to
type Dependencies struct {
	Posters      service.PosterStorage
	Revocations  auth.RevocationStore
	HealthChecks map[string]handlers.Pinger
}

// SetupRoutes configures all the routes for the application.
// Background maintenance started here stops when ctx is done.
func SetupRoutes(ctx context.Context, db *gorm.DB, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	router := gin.New()
	// lets handlers pass *gin.Context as the request context
	router.ContextWithFallback = true

	metrics := middleware.NewMetrics()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(metrics.Middleware())

	validate := service.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	memberRepo := repository.NewTeamMemberRepository(db)
	joinRepo := repository.NewTeamJoinRequestRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	gameRepo := repository.NewGameRepository(db)
	tournamentRepo := repository.NewTournamentRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, adminRepo, teamRepo, validate)
	teamService := service.NewTeamService(teamRepo, memberRepo, joinRepo, userRepo, validate)
	joinService := service.NewTeamJoinService(teamRepo, joinRepo, userRepo, validate)
	matchService := service.NewMatchService(matchRepo, teamRepo, validate)
	gameService := service.NewGameService(gameRepo, validate)
	tournamentService := service.NewTournamentService(tournamentRepo, gameRepo, teamRepo, deps.Posters, validate, cfg.PosterMaxBytes)

	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg), deps.Revocations)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authHandler := auth.NewAuthHandler(authService, userService)
	authMiddleware := auth.NewAuthMiddleware(authService, userRepo)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)
	go loginLimiter.RunCleanup(ctx, 10*time.Minute)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, Version, deps.HealthChecks)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	joinHandler := handlers.NewTeamJoinHandler(joinService)
	matchHandler := handlers.NewMatchHandler(matchService)
	gameHandler := handlers.NewGameHandler(gameService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, cfg.PosterMaxBytes)

	requireUser := authMiddleware.RequireUser()
	requireAdmin := authMiddleware.RequireAdmin()
	optionalUser := authMiddleware.OptionalUser()

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	metrics.Register(router)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", loginLimiter.Handler(), authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}
	router.POST("/admin/login", loginLimiter.Handler(), authHandler.AdminLogin)

	// Users
	router.GET("/user", optionalUser, userHandler.GetUser)
	router.GET("/users", userHandler.ListUsers)
	me := router.Group("/me", requireUser)
	{
		me.GET("", userHandler.Me)
		me.GET("/teams", userHandler.MyTeams)
	}

	// Teams
	router.GET("/teams", teamHandler.ListTeams)
	router.GET("/team", optionalUser, teamHandler.GetTeam)
	team := router.Group("/team", requireUser)
	{
		team.POST("", teamHandler.CreateTeam)
		team.PATCH("", teamHandler.UpdateTeam)
		team.DELETE("", teamHandler.DeleteTeam)

		team.POST("/member", teamHandler.AddMember)
		team.PATCH("/member", teamHandler.ChangeRole)
		team.DELETE("/member", teamHandler.RemoveMember)

		join := team.Group("/join")
		{
			join.POST("/invite", joinHandler.Invite)
			join.PATCH("/invite", joinHandler.RespondInvitation)
			join.DELETE("/invite", joinHandler.CancelInvitation)
			join.POST("/request", joinHandler.Request)
			join.PATCH("/request", joinHandler.RespondRequest)
			join.DELETE("/request", joinHandler.CancelRequest)
			join.GET("/invitations", joinHandler.ListInvitations)
			join.GET("/requests", joinHandler.ListRequests)
		}
	}

	// Matches
	router.GET("/matches", matchHandler.ListMatches)
	router.GET("/match", matchHandler.GetMatch)
	router.POST("/match", requireAdmin, matchHandler.CreateMatch)
	router.POST("/match/competitive", requireAdmin, matchHandler.CreateMatch)
	router.PATCH("/match", requireAdmin, matchHandler.EditMatch)

	// Tournaments and games
	router.GET("/tournaments", tournamentHandler.ListTournaments)
	router.GET("/tournament", tournamentHandler.GetTournament)
	router.POST("/tournament", requireAdmin, tournamentHandler.CreateTournament)
	router.PATCH("/tournament", requireAdmin, tournamentHandler.UpdateTournament)
	router.POST("/tournament/member", requireUser, tournamentHandler.JoinTournament)
	router.PATCH("/tournament/member", requireAdmin, tournamentHandler.SetMemberStatus)

	router.GET("/tournament/games", gameHandler.ListGames)
	router.GET("/tournament/game", gameHandler.GetGame)
	router.POST("/tournament/game", requireAdmin, gameHandler.CreateGame)
	router.PUT("/tournament/game", requireAdmin, gameHandler.UpdateGame)

	return router, nil
}
