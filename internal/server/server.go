package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gymbook/internal/appointment"
	"gymbook/internal/auth"
	"gymbook/internal/availability"
	"gymbook/internal/config"
	"gymbook/internal/connection"
	"gymbook/internal/notification"
	"gymbook/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notification.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	slotRepo := availability.NewRepository(db)
	connectionRepo := connection.NewRepository(db)
	appointmentRepo := appointment.NewRepository(db)

	availabilityHandler := availability.NewHandler(availability.NewService(slotRepo))
	connectionHandler := connection.NewHandler(connection.NewService(connectionRepo, userRepo, notifier))
	appointmentHandler := appointment.NewHandler(appointment.NewService(appointmentRepo, slotRepo, connectionRepo, notifier))
	notificationHandler := notification.NewHandler(notifier)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	member := router.Group("/member")
	member.Use(authMiddleware, auth.RequireRole(auth.RoleMember))
	{
		member.POST("/appointments", appointmentHandler.BookSession)
		member.PUT("/appointments/:appointmentID/cancel", appointmentHandler.CancelAppointment)
		member.GET("/appointments/upcoming", appointmentHandler.ListUpcoming)
		member.GET("/appointments/history", appointmentHandler.ListHistory)
		member.GET("/statistics/daily", appointmentHandler.DailyStatistics)

		member.GET("/trainers/:trainerID/availability", availabilityHandler.ListTrainerFreeSlots)
		member.POST("/connect-requests", connectionHandler.RequestConnection)
	}

	trainer := router.Group("/trainer")
	trainer.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer))
	{
		trainer.POST("/availability", availabilityHandler.PublishSlot)
		trainer.GET("/availability", availabilityHandler.ListMySlots)
		trainer.DELETE("/availability/:availabilityID", availabilityHandler.RemoveSlot)

		trainer.GET("/appointments/pending", appointmentHandler.ListPending)
		trainer.PUT("/appointments/:appointmentID/accept", appointmentHandler.AcceptAppointment)
		trainer.PUT("/appointments/:appointmentID/reject", appointmentHandler.RejectAppointment)

		trainer.GET("/connect-requests/pending", connectionHandler.ListPending)
		trainer.PUT("/connect-requests/:requestID/accept", connectionHandler.AcceptRequest)
		trainer.PUT("/connect-requests/:requestID/reject", connectionHandler.RejectRequest)
	}

	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", notificationHandler.ListMine)
		notifications.PUT("/:notificationID/read", notificationHandler.MarkRead)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
