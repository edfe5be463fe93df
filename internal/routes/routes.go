package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/config"
	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/handlers"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/booking"
	ucGallery "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/gallery"
	ucMedia "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/media"
)

// Deps are the infrastructure clients built at startup. Every client except
// Sessions is optional; a nil value selects the built-in fallback.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Location *time.Location
	Audit    *audit.Dispatcher

	Sessions     domain.SessionStore
	Availability domain.AvailabilitySource
	Reservations domain.ReservationSink
	Media        ucMedia.Source
	MediaCache   ucMedia.Cache
	Gallery      ucGallery.Store
}

// NewAvailability builds the slot lookup shared by the HTTP API and the CLI.
func NewAvailability(d Deps) *ucBooking.GetAvailability {
	cfg := d.Config
	window := domain.WorkingWindow{
		StartHour:    cfg.WorkStartHour,
		EndHour:      cfg.WorkEndHour,
		SlotDuration: cfg.SlotDuration(),
	}
	return ucBooking.NewGetAvailability(
		d.Availability,
		cfg.GoogleCalendarID,
		window,
		cfg.AvailabilityTimeout,
		d.Audit,
		d.Log,
	)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORS(cfg.AllowedOrigins()),
	)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	tokens := middleware.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := NewAvailability(d)

	submitUC := ucBooking.NewSubmitReservation(
		d.Reservations,
		d.Location,
		cfg.SlotDuration(),
		cfg.ReservationTimeout,
		d.Audit,
		d.Log,
	)

	flow := ucBooking.NewFlow(
		d.Sessions,
		availabilityUC,
		submitUC,
		d.Location,
		d.Audit,
		d.Log,
	)

	feed := ucMedia.NewFeed(d.Media, d.MediaCache, cfg.MediaCacheTTL, 0, d.Log)
	galleryUC := ucGallery.NewListImages(d.Gallery, 0, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(flow, feed, galleryUC, cfg.MediaLimit)
	bookingHandler := handlers.NewBookingHandler(flow, tokens, cfg.VerifyEmailDomain)

	r.GET("/health", publicHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter, d.Log))
	{
		api.GET("/services", publicHandler.Services)
		api.GET("/availability", publicHandler.Availability)
		api.GET("/media", publicHandler.Media)
		api.GET("/gallery", publicHandler.Gallery)

		api.POST("/booking/sessions", bookingHandler.Start)

		// ------------------------------
		// BOOKING SESSION (bearer token)
		// ------------------------------
		session := api.Group("/booking/session")
		session.Use(middleware.SessionToken(tokens))
		{
			session.GET("", bookingHandler.Get)
			session.DELETE("", bookingHandler.Restart)

			session.PUT("/service", bookingHandler.SelectService)
			session.PUT("/date", bookingHandler.SelectDate)
			session.PUT("/time", bookingHandler.SelectTime)
			session.PUT("/details", bookingHandler.UpdateDetails)

			session.POST("/next", bookingHandler.Next)
			session.POST("/back", bookingHandler.Back)
			session.POST("/submit", bookingHandler.Submit)
		}
	}
}
