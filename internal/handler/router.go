package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"campsite-booking/internal/domain/user"
	"campsite-booking/internal/handler/api"
	"campsite-booking/internal/handler/middleware"
	"campsite-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	siteHandler *api.SiteHandler,
	customerHandler *api.CustomerHandler,
	problemHandler *api.ProblemHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, siteHandler, customerHandler, problemHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	siteHandler *api.SiteHandler,
	customerHandler *api.CustomerHandler,
	problemHandler *api.ProblemHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			// Mutations are reserved for desk staff; viewers only read.
			operatorOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking, Mw: operatorOnly},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.UpdateBooking, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/:id/bill", Handler: bookingHandler.GenerateBill, Mw: operatorOnly},
				{Method: http.MethodGet, Path: "/:id/bill", Handler: bookingHandler.DownloadBill},
				{Method: http.MethodGet, Path: "/:id/audit", Handler: bookingHandler.GetAuditTrail},
				{Method: http.MethodGet, Path: "/:id/problems", Handler: problemHandler.ListProblems},
				{Method: http.MethodPost, Path: "/:id/problems", Handler: problemHandler.ReportProblem, Mw: operatorOnly},
			})
		}

		problems := apiGroup.Group("/problems")
		problems.Use(authMiddleware.RequireAuth())
		{
			operatorOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}
			addRoutes(problems, []route{
				{Method: http.MethodPatch, Path: "/:id", Handler: problemHandler.UpdateProblem, Mw: operatorOnly},
			})
		}

		sites := apiGroup.Group("/sites")
		sites.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sites, []route{
				{Method: http.MethodGet, Path: "", Handler: siteHandler.ListSites},
				{Method: http.MethodGet, Path: "/available", Handler: siteHandler.ListAvailableSites},
				{Method: http.MethodGet, Path: "/:id", Handler: siteHandler.GetSite},
			})
		}

		customers := apiGroup.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "", Handler: customerHandler.ListCustomers},
				{Method: http.MethodGet, Path: "/:id", Handler: customerHandler.GetCustomer},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
