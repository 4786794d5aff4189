package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetsched/internal/app"
	"meetsched/internal/booking"
	"meetsched/internal/calendar"
	"meetsched/internal/config"
	"meetsched/internal/logging"
	"meetsched/internal/server"
	"meetsched/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.Init(false).Fatal("config", zap.Error(err))
	}
	logger := logging.Init(cfg.IsProduction())
	defer logger.Sync()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		logger.Fatal("default timezone", zap.Error(err))
	}

	appInstance := &app.App{
		Store:       st,
		HorizonDays: cfg.BookingHorizonDays,
	}

	oauthCfg, err := calendar.NewConfig(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirectURL)
	if err != nil {
		// Bookings require calendar access; the rest of the API still works.
		logger.Warn("google calendar disabled", zap.Error(err))
	} else {
		appInstance.OAuth = oauthCfg
	}
	cal := calendar.NewService(oauthCfg, st, loc)
	validator := booking.NewValidator(st, cal)
	appInstance.Validator = validator
	appInstance.Booker = booking.NewOrchestrator(st, validator, cal)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(app.Recovery())
	router.Use(app.RateLimit(cfg.MaxRequestsPerMin))

	// OAuth2 callback (must be before auth middleware)
	router.GET("/oauth2callback", appInstance.GoogleOAuth2CallbackHandler)

	router.Use(app.AuthMiddleware(cfg.JWTSecret, cfg.StaticTokens))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/:id/events", appInstance.CreateEventHandler)
			users.GET("/:id/events", appInstance.ListEventsHandler)
			users.GET("/:id/events/:event_id", appInstance.GetEventHandler)
			users.PUT("/:id/events/:event_id", appInstance.UpdateEventHandler)
			users.DELETE("/:id/events/:event_id", appInstance.DeleteEventHandler)

			users.GET("/:id/schedule", appInstance.GetScheduleHandler)
			users.PUT("/:id/schedule", appInstance.SaveScheduleHandler)

			users.GET("/:id/events/:event_id/times", appInstance.ListValidTimesHandler)
			users.POST("/:id/events/:event_id/bookings", appInstance.CreateBookingHandler)
		}

		api.GET("/calendar/auth", appInstance.GoogleAuthHandler)
	}

	server.Run(router, cfg.Port)
}
