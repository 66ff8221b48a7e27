package handler

import (
	"net/http"

	"paroquia_connect/internal/middleware"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Services bundles everything the HTTP surface depends on
type Services struct {
	Auth          service.AuthService
	Events        service.EventService
	Agenda        service.AgendaService
	Schedules     service.ScheduleService
	Announcements service.AnnouncementService
	Dashboard     service.DashboardService
	Admin         service.AdminService
	Contact       service.ContactService
}

// RouterConfig holds the HTTP-level settings
type RouterConfig struct {
	FrontendURL string
	Cookie      CookieConfig
}

// NewRouter builds the gin engine with middleware, /health and every /api/v1 route
func NewRouter(svcs Services, cfg RouterConfig, log zerolog.Logger) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(middleware.LoadSession(svcs.Auth, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authMW := middleware.RequireAuth()
	adminMW := middleware.RequireAdmin()

	api := router.Group("/api/v1")
	NewAuthHandler(svcs.Auth, cfg.Cookie).RegisterAuthRoutes(api, authMW)
	NewEventHandler(svcs.Events).RegisterEventRoutes(api, authMW)
	NewAgendaHandler(svcs.Agenda).RegisterAgendaRoutes(api, authMW)
	NewScheduleHandler(svcs.Schedules).RegisterScheduleRoutes(api, authMW)
	NewAnnouncementHandler(svcs.Announcements).RegisterAnnouncementRoutes(api, authMW)
	NewDashboardHandler(svcs.Dashboard).RegisterDashboardRoutes(api, authMW)
	NewAdminHandler(svcs.Admin).RegisterAdminRoutes(api, adminMW)
	NewContactHandler(svcs.Contact).RegisterContactRoutes(api)

	return router, nil
}
