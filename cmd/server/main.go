package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitaura/gitaura/internal/handlers"
	"github.com/gitaura/gitaura/internal/middleware"
	"github.com/gitaura/gitaura/internal/repositories"
	"github.com/gitaura/gitaura/internal/services"
	"github.com/gitaura/gitaura/internal/storage"
	"github.com/gitaura/gitaura/pkg/config"
	"github.com/gitaura/gitaura/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	store := storage.NewSQLiteStore(database.DB)
	analysisRepo := repositories.NewAnalysisRepository(store)
	profileRepo := repositories.NewProfileRepository(store)

	profileService := services.NewProfileService(profileRepo)
	achievementService := services.NewAchievementService(profileService)
	analysisService := services.NewAnalysisService(analysisRepo, profileService, achievementService)
	statsService := services.NewStatsService(analysisService, profileService)
	exportService := services.NewExportService(analysisRepo, profileRepo, profileService)
	githubService := services.NewGitHubService(config.AppConfig.GitHub.Token)
	scoringService := services.NewScoringService(config.AppConfig.LLM)

	if err := scoringService.ValidateAPIKey(); err != nil {
		log.Printf("Warning: scoring disabled, %v", err)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// Setup routes
	setupRoutes(router, analysisService, profileService, achievementService, statsService, exportService, githubService, scoringService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	analysisService *services.AnalysisService,
	profileService *services.ProfileService,
	achievementService *services.AchievementService,
	statsService *services.StatsService,
	exportService *services.ExportService,
	githubService *services.GitHubService,
	scoringService *services.ScoringService,
) {
	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService, githubService, scoringService)
	profileHandler := handlers.NewProfileHandler(profileService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	statsHandler := handlers.NewStatsHandler(statsService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.POST("/analyses", analysisHandler.Analyze)
		api.GET("/analyses", analysisHandler.ListAnalyses)
		api.GET("/analyses/:id", analysisHandler.GetAnalysis)
		api.DELETE("/analyses/:id", analysisHandler.DeleteAnalysis)
		api.DELETE("/analyses", analysisHandler.ClearAnalyses)

		api.GET("/profile", profileHandler.GetProfile)
		api.PATCH("/profile", profileHandler.UpdateProfile)
		api.POST("/profile/favorites", profileHandler.ToggleFavorite)
		api.GET("/profile/favorites/:owner/:name", profileHandler.CheckFavorite)

		api.GET("/achievements", achievementHandler.ListAchievements)
		api.GET("/stats", statsHandler.GetStats)

		api.GET("/export", exportHandler.Export)
		api.GET("/export/xlsx", exportHandler.ExportExcel)
		api.POST("/import", exportHandler.Import)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
