package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"visit-scheduler/internal/handler/api"
	"visit-scheduler/internal/handler/middleware"
	"visit-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Scheduling     *api.SchedulingHandler
	Availability   *api.AvailabilityHandler
	Sweep          *api.SweepHandler
	AuthMiddleware *middleware.AuthMiddleware
	Logger         *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := h.AuthMiddleware.RequireAuth()

	apiGroup := engine.Group("/api")
	{
		properties := apiGroup.Group("/properties/:id")
		addRoutes(properties, []route{
			{Method: http.MethodGet, Path: "/slots", Handler: h.Scheduling.ListAvailableSlots},
			{Method: http.MethodPost, Path: "/bookings", Handler: h.Scheduling.Book, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodGet, Path: "/patterns", Handler: h.Availability.ListPatterns},
			{Method: http.MethodPost, Path: "/patterns", Handler: h.Availability.CreatePattern, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodDelete, Path: "/patterns/:patternId", Handler: h.Availability.DeletePattern, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodPost, Path: "/slots", Handler: h.Availability.AddAdHocSlot, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodDelete, Path: "/slots/:slotId", Handler: h.Availability.WithdrawSlot, Mw: []gin.HandlerFunc{requireAuth}},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Scheduling.GetBooking},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Scheduling.ConfirmBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Scheduling.CancelBooking},
			})
		}

		me := apiGroup.Group("/me")
		me.Use(requireAuth)
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Scheduling.ListMyBookings},
			})
		}
	}

	internal := engine.Group("/internal")
	{
		addRoutes(internal, []route{
			{
				Method:  http.MethodPost,
				Path:    "/sweep",
				Handler: h.Sweep.Sweep,
				Mw: []gin.HandlerFunc{
					middleware.RequireCronSecret(cfg.Sweep.Secret),
					middleware.RateLimit(middleware.NewHourlyLimiter(cfg.Sweep.TriggerRatePerHour)),
				},
			},
		})
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
