package main

import (
	"log"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/config"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/database"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/handlers"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/middleware"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/services"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/telegram"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/ws"

	_ "github.com/MrVulpesTech/hospital-quiz-bot/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Hospital Intake Bot API
// @version         1.0
// @description     Clinician API for the conversational medical intake bot
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	catalog := services.LoadCatalog(models.LanguageUkrainian, map[string]string{
		models.LanguageUkrainian: cfg.QuizFileUK,
		models.LanguageGerman:    cfg.QuizFileDE,
	})
	prompts := services.LoadPrompts(cfg.PromptsFile)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	participantService := services.NewParticipantService(db)
	responseService := services.NewResponseService(db)
	aiService := services.NewOpenAIService(cfg)
	reportService := services.NewReportService(responseService, catalog, aiService, prompts)
	engine := services.NewQuizEngine(catalog, responseService, cfg.RestartPolicy)

	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(responseService, reportService, cfg.ReportTimeout)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/reports", wsHandler.HandleWebSocket)

	if cfg.TelegramToken != "" && cfg.WebhookBaseURL != "" {
		client := telegram.NewClient(cfg.TelegramToken)
		state := telegram.NewStateManager()
		updateHandler := telegram.NewUpdateHandler(
			client, state, participantService, engine,
			reportService, responseService, hub, cfg.ReportTimeout,
		)
		bot := telegram.NewBot(client, updateHandler, cfg.WebhookBaseURL, cfg.WebhookSecret)
		if err := bot.Start(); err != nil {
			log.Fatalf("failed to start bot: %v", err)
		}
		defer bot.Stop()
		r.POST(bot.WebhookPath(), bot.HandleWebhook)
	} else {
		log.Println("TELEGRAM_BOT_TOKEN or WEBHOOK_BASE_URL not set, bot disabled")
	}

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		reports := api.Group("/reports")
		reports.Use(middleware.JWTAuth(authService))
		{
			reports.GET("", reportHandler.List)
			reports.GET("/:id", reportHandler.Get)
			reports.POST("/:id/regenerate", reportHandler.Regenerate)
		}
	}

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
