package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazelmere/envbooker-backend/internal/api"
	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/booking"
	"github.com/hazelmere/envbooker-backend/internal/environment"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	"github.com/hazelmere/envbooker-backend/internal/schedule"
	"github.com/hazelmere/envbooker-backend/internal/share"
	"github.com/hazelmere/envbooker-backend/internal/workspace"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	GatewaySecret   string
	GatewayTokenTTL time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
	Tokens *auth.TokenManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	tokens := auth.NewTokenManager(cfg.GatewaySecret, cfg.GatewayTokenTTL)
	clock := schedule.NewSystemClock()

	// Workspace Module
	wsRepo := workspace.NewPgxRepository(cfg.DBPool)
	wsService := workspace.NewService(wsRepo)

	// ResourceType Module
	rtRepo := resourcetype.NewPgxRepository(cfg.DBPool)
	rtService := resourcetype.NewService(rtRepo)

	// Environment Module
	envRepo := environment.NewPgxRepository(cfg.DBPool)
	envService := environment.NewService(envRepo, clock)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, envService, rtService, clock)

	// Share Module
	shareRepo := share.NewPgxRepository(cfg.DBPool)
	shareService := share.NewService(shareRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		WorkspaceService:   wsService,
		RTService:          rtService,
		EnvironmentService: envService,
		BookingService:     bookingService,
		ShareService:       shareService,
		Tokens:             tokens,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router: router,
		Tokens: tokens,
	}
}
