package main

import (
	"fmt"
	"log"
	"time"

	"quickqueue/config"
	"quickqueue/internal/database"
	"quickqueue/internal/handler"
	"quickqueue/internal/identity"
	"quickqueue/internal/middleware"
	"quickqueue/internal/payment"
	"quickqueue/internal/qr"
	"quickqueue/internal/repository"
	"quickqueue/internal/service"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()
	defer logger.Sync()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(rdb)
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	// external collaborators
	provider := payment.NewRazorpayProvider(&cfg.Razorpay)
	encoder := qr.NewDataURIEncoder()
	identityProvider := identity.NewHTTPProvider(&cfg.Auth)

	// services
	sessionTTL := time.Duration(cfg.Auth.SessionTTLDays) * 24 * time.Hour
	authService := service.NewAuthService(userRepo, sessionRepo, identityProvider, sessionTTL)
	eventService := service.NewEventService(eventRepo)
	bookingService := service.NewBookingService(bookingRepo, eventRepo, provider, encoder)
	contactService := service.NewContactService(contactRepo)
	dashboardService := service.NewDashboardService(eventRepo, bookingRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.Default()
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	router.GET("/api/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "QuickQueue API",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.NewAuthHandler(authService).RegisterRoutes(router, authMiddleware)
	handler.NewEventHandler(eventService).RegisterRoutes(router, authMiddleware)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router, authMiddleware)
	handler.NewPaymentHandler(bookingService).RegisterRoutes(router)
	handler.NewTicketHandler(bookingService).RegisterRoutes(router, authMiddleware)
	handler.NewContactHandler(contactService).RegisterRoutes(router)
	handler.NewDashboardHandler(dashboardService).RegisterRoutes(router, authMiddleware)

	if err := router.Run(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
