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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/config"
	"github.com/yourusername/survey-api/internal/handler"
	"github.com/yourusername/survey-api/internal/middleware"
	pgRepo "github.com/yourusername/survey-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/survey-api/internal/repository/redis"
	"github.com/yourusername/survey-api/internal/service"
	"github.com/yourusername/survey-api/internal/service/gamification"
	"github.com/yourusername/survey-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	surveyRepo := pgRepo.NewSurveyRepo(db)
	completionRepo := pgRepo.NewCompletionRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)
	badgeRepo := pgRepo.NewBadgeRepo(db)
	levelRepo := pgRepo.NewLevelRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Конфигурация движка геймификации
	engineConfig := buildEngineConfig(cfg.Gamification)

	// Инициализируем сервисы
	gamificationService := service.NewGamificationService(
		userRepo, surveyRepo, completionRepo, responseRepo, badgeRepo, cacheRepo, engineConfig,
	)
	statsService := service.NewStatsService(
		userRepo, badgeRepo, levelRepo, completionRepo, responseRepo, cacheRepo, engineConfig,
	)
	surveyService := service.NewSurveyService(surveyRepo)
	userService := service.NewUserService(userRepo)

	// Инициализируем обработчики
	surveyHandler := handler.NewSurveyHandler(surveyService, gamificationService)
	statsHandler := handler.NewStatsHandler(statsService)
	userHandler := handler.NewUserHandler(userService)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	// При деплое на VM с load balancer: добавьте IP балансировщика в список
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Пользователи
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)

			userWithID := users.Group("/:id")
			userWithID.Use(middleware.ExtractUintParam("id", "requestedUserID"))
			{
				userWithID.GET("", userHandler.GetUser)
			}

			// Личные данные: идентификатор берется из заголовка
			me := users.Group("/me")
			me.Use(middleware.RequireUserID())
			{
				me.GET("/stats", statsHandler.GetUserStats)
				me.GET("/streak", statsHandler.GetStreak)
				me.GET("/badges", statsHandler.GetBadges)
			}
		}

		// Таблица лидеров (публичный маршрут)
		api.GET("/leaderboard", statsHandler.GetLeaderboard)
		api.GET("/leaderboard/export", statsHandler.ExportLeaderboard)

		// Уровни
		api.GET("/levels", statsHandler.GetLevels)

		// Анкеты
		surveys := api.Group("/surveys")
		{
			surveys.GET("", surveyHandler.ListSurveys)
			surveys.POST("", surveyHandler.CreateSurvey)

			surveyWithID := surveys.Group("/:id")
			surveyWithID.Use(middleware.ExtractUintParam("id", "surveyID"))
			{
				surveyWithID.GET("", surveyHandler.GetSurvey)
				surveyWithID.POST("/questions", surveyHandler.AddQuestions)
				surveyWithID.POST("/submissions", middleware.RequireUserID(), surveyHandler.SubmitSurvey)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}

// buildEngineConfig переносит настройки геймификации из файла конфигурации
// в конфигурацию движка; незаполненные значения остаются умолчаниями
func buildEngineConfig(cfg config.GamificationConfig) *gamification.Config {
	engine := gamification.DefaultConfig()

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Printf("WARNING: неизвестный часовой пояс %q, используется %s", cfg.Timezone, engine.Location)
		} else {
			engine.Location = loc
		}
	}
	if cfg.BasePointsPerAnswer > 0 {
		engine.BasePointsPerAnswer = cfg.BasePointsPerAnswer
	}
	if cfg.FreshPointsPerAnswer > 0 {
		engine.FreshPointsPerAnswer = cfg.FreshPointsPerAnswer
	}
	if cfg.SpecialBonus > 0 {
		engine.SpecialBonus = cfg.SpecialBonus
	}
	if cfg.WelcomeBackBonus > 0 {
		engine.WelcomeBackBonus = cfg.WelcomeBackBonus
	}
	if cfg.WelcomeBackDays > 0 {
		engine.WelcomeBackDays = cfg.WelcomeBackDays
	}

	return engine
}
