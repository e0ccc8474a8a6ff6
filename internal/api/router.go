package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hazelmere/envbooker-backend/internal/auth"
	"github.com/hazelmere/envbooker-backend/internal/booking"
	bookingHttp "github.com/hazelmere/envbooker-backend/internal/booking/http"
	"github.com/hazelmere/envbooker-backend/internal/environment"
	envHttp "github.com/hazelmere/envbooker-backend/internal/environment/http"
	"github.com/hazelmere/envbooker-backend/internal/resourcetype"
	rtHttp "github.com/hazelmere/envbooker-backend/internal/resourcetype/http"
	"github.com/hazelmere/envbooker-backend/internal/share"
	shareHttp "github.com/hazelmere/envbooker-backend/internal/share/http"
	"github.com/hazelmere/envbooker-backend/internal/workspace"
	wsHttp "github.com/hazelmere/envbooker-backend/internal/workspace/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	WorkspaceService   workspace.Service
	RTService          resourcetype.Service
	EnvironmentService environment.Service
	BookingService     booking.Service
	ShareService       share.Service
	Tokens             *auth.TokenManager
}

// NewRouter initializes the HTTP router engine. It assembles middleware
// (CORS, logging, recovery, metrics) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Logger(), gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", MetricsHandler())

	authMiddleware := auth.Required(cfg.Tokens)

	wsHandler := wsHttp.NewHandler(cfg.WorkspaceService)
	rtHandler := rtHttp.NewHandler(cfg.RTService, cfg.WorkspaceService)
	envHandler := envHttp.NewHandler(cfg.EnvironmentService, cfg.RTService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	shareHandler := shareHttp.NewHandler(cfg.ShareService)

	v1 := r.Group("/v1")
	{
		wsHttp.RegisterRoutes(v1, wsHandler, authMiddleware)
		rtHttp.RegisterRoutes(v1, rtHandler, authMiddleware)
		envHttp.RegisterRoutes(v1, envHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		shareHttp.RegisterRoutes(v1, shareHandler, authMiddleware)
	}

	return r
}
