package handler

import (
	"net/http"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/handler/api"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine             *gin.Engine
	Config             config.Config
	Logger             *middleware.Logger
	Metrics            *metrics.Metrics
	AuthHandler        *api.AuthHandler
	ReservationHandler *api.ReservationHandler
	RoomHandler        *api.RoomHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	p.Engine.Use(p.Logger.LoggingMiddleware())
	if p.Config.Metrics.Enabled {
		p.Engine.Use(middleware.MetricsMiddleware(p.Metrics))
	}
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	authMw := p.AuthMiddleware
	staffOnly := []gin.HandlerFunc{authMw.RequireRoleAtLeast(user.RoleStaff)}
	adminOnly := []gin.HandlerFunc{authMw.RequireRoleAtLeast(user.RoleAdmin)}

	engine.GET("/health", healthCheck)
	if p.Config.Metrics.Enabled {
		engine.GET(p.Config.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: p.AuthHandler.Login},
				{Method: http.MethodPost, Path: "/register", Handler: p.AuthHandler.Register},
				{Method: http.MethodPost, Path: "/refresh", Handler: p.AuthHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: p.AuthHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: p.AuthHandler.Me},
			})
		}

		apiGroup.GET("/reservations/availability", p.ReservationHandler.Availability)

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMw.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: p.ReservationHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: p.ReservationHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: p.ReservationHandler.Get},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: p.ReservationHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.ReservationHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: p.ReservationHandler.CheckIn, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: p.ReservationHandler.CheckOut, Mw: staffOnly},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: p.RoomHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.RoomHandler.Get},
			})

			staff := rooms.Group("")
			staff.Use(authMw.RequireAuth())
			addRoutes(staff, []route{
				{Method: http.MethodPost, Path: "", Handler: p.RoomHandler.Create, Mw: staffOnly},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: p.RoomHandler.ListReservations, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/activate", Handler: p.RoomHandler.Activate, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: p.RoomHandler.Deactivate, Mw: staffOnly},
				{Method: http.MethodPatch, Path: "/:id/price", Handler: p.RoomHandler.ChangePrice, Mw: staffOnly},
			})
		}

		roomTypes := apiGroup.Group("/room-types")
		{
			addRoutes(roomTypes, []route{
				{Method: http.MethodGet, Path: "", Handler: p.RoomHandler.ListTypes},
			})

			admin := roomTypes.Group("")
			admin.Use(authMw.RequireAuth())
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "", Handler: p.RoomHandler.CreateType, Mw: adminOnly},
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
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
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
