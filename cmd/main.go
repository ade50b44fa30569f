package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/openformlab/formbuilder/config"
	"github.com/openformlab/formbuilder/database"
	_ "github.com/openformlab/formbuilder/docs" // Swagger docs - auto-generated
	builderctrl "github.com/openformlab/formbuilder/internal/controller/builder"
	respondentctrl "github.com/openformlab/formbuilder/internal/controller/respondent"
	"github.com/openformlab/formbuilder/internal/logger"
	"github.com/openformlab/formbuilder/internal/model"
	"github.com/openformlab/formbuilder/internal/repository"
	"github.com/openformlab/formbuilder/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Form Builder API
// @version 1.0
// @description REST API for building forms (categorize, cloze, comprehension and simple question types), collecting responses, and viewing server-scored results.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewFormRepository,
			repository.NewResponseRepository,
		),

		// Services layer
		fx.Provide(
			service.NewFormService,
			service.NewSubmissionService,
			service.NewResponseService,
		),

		// API controllers layer
		fx.Provide(
			builderctrl.NewFormController,
			respondentctrl.NewResponseController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	formCtrl *builderctrl.FormController,
	responseCtrl *respondentctrl.ResponseController,
) {
	// Builder routes (form management)
	builderGroup := router.Group("/api/v1/builder")
	{
		formsGroup := builderGroup.Group("/forms")
		formsGroup.POST("", formCtrl.CreateForm)
		formsGroup.PUT("/:form_id", formCtrl.UpdateForm)
		formsGroup.PATCH("/:form_id/accepting-responses", formCtrl.SetAcceptingResponses)
		formsGroup.DELETE("/:form_id", formCtrl.DeleteForm)
		formsGroup.GET("/:form_id/responses", formCtrl.GetFormResponses)
	}

	// Respondent routes
	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/forms", responseCtrl.ListForms)
		apiGroup.GET("/forms/:form_id", responseCtrl.GetForm)
		apiGroup.POST("/forms/:form_id/responses", responseCtrl.SubmitResponse)
		apiGroup.GET("/responses/:response_id", responseCtrl.GetResponse)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Form Builder API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Form{},
		&model.Question{},
		&model.Response{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
