package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vacei/admin-dashboard/docs" // swagger spec
	"github.com/vacei/admin-dashboard/internal/api/handler"
	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/service"
	"github.com/vacei/admin-dashboard/internal/infrastructure/backend"
	redisstore "github.com/vacei/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/vacei/admin-dashboard/internal/pkg/config"
)

// Dependencies are the long-lived resources the router wires into its
// services.
type Dependencies struct {
	Backend  *backend.Client
	Sessions *redisstore.SessionStore
	Renderer echo.Renderer
	Session  config.SessionConfig
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handler.NewValidator()

	log := deps.Logger
	cookie := middleware.SessionCookie{Name: deps.Session.CookieName, Secure: deps.Session.CookieSecure}

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Backend, deps.Sessions, deps.Session.Secret, deps.Session.TTL, log.With().Str("component", "auth").Logger())
	userService := service.NewUserService(deps.Backend, deps.Backend, deps.Backend, log.With().Str("component", "users").Logger())
	assignmentService := service.NewAssignmentService(deps.Backend, deps.Backend, deps.Backend, log.With().Str("component", "assignments").Logger())
	dashboardService := service.NewDashboardService(deps.Backend, log.With().Str("component", "dashboard").Logger())

	e.HTTPErrorHandler = NewHTTPErrorHandler(log, authService, cookie)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("dashboard"))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "same-origin",
	}))

	authHandler := handler.NewAuthHandler(authService, cookie, log)
	dashboardHandler := handler.NewDashboardHandler(authService, dashboardService, log)
	accountantHandler := handler.NewAccountantHandler(authService, userService, log)
	clientHandler := handler.NewClientHandler(authService, userService, log)
	assignClients := handler.NewAssignClientsHandler(authService, assignmentService, log)
	assignAccountants := handler.NewAssignAccountantsHandler(authService, assignmentService, log)
	requireSession := middleware.Session(authService, cookie)

	// --- Auth routes ---
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/dashboard") })
	e.GET(middleware.LoginPath, authHandler.LoginPage)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.POST("/logout", authHandler.Logout, requireSession)

	// --- Dashboard pages (session required) ---
	dash := e.Group("/dashboard", requireSession)
	dash.GET("", dashboardHandler.Home)

	accountants := dash.Group("/accountants")
	accountants.GET("", accountantHandler.List)
	accountants.GET("/create", accountantHandler.Form)
	accountants.POST("/create", accountantHandler.Save)
	accountants.GET("/update", accountantHandler.Form)
	accountants.POST("/update", accountantHandler.Save)
	accountants.POST("/delete", accountantHandler.Delete)
	accountants.POST("/status", accountantHandler.Status)
	accountants.GET("/assign-clients", assignClients.Page)
	accountants.POST("/assign-clients", assignClients.Assign)

	clients := dash.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.GET("/create", clientHandler.Form)
	clients.POST("/create", clientHandler.Save)
	clients.GET("/update", clientHandler.Form)
	clients.POST("/update", clientHandler.Save)
	clients.GET("/view", clientHandler.View)
	clients.POST("/delete", clientHandler.Delete)
	clients.POST("/status", clientHandler.Status)
	clients.GET("/assign-accountants", assignAccountants.Page)
	clients.POST("/assign-accountants", assignAccountants.Assign)
	clients.GET("/quickbooks", clientHandler.QuickBooks)
	clients.POST("/quickbooks/revoke", clientHandler.RevokeQuickBooks)

	// --- JSON API (session required) ---
	v1 := e.Group("/api/v1", requireSession)
	v1.GET("/dashboard/stats", dashboardHandler.Stats)

	// --- Health checks and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]handler.Pinger{
		"redis":   deps.Sessions,
		"backend": deps.Backend,
	})

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
