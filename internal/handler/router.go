package handler

import (
	"net/http"

	"tablekeeper/internal/handler/api"
	"tablekeeper/internal/handler/middleware"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Reservation *api.ReservationHandler
	Table       *api.TableHandler
	Slot        *api.SlotHandler
	Voice       *api.VoiceHandler
	Admin       *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, observer middleware.RequestObserver, metricsHandler http.Handler) {
	setupMiddleware(engine, cfg, observer)
	setupRoutes(engine, h, authMiddleware, metricsHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, observer middleware.RequestObserver) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(observer, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, metricsHandler http.Handler) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(metricsHandler))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		{
			// Guests book and cancel without a token; staff may also pick a table.
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "/cancel", Handler: h.Reservation.CancelReservation},
			})

			staff := reservations.Group("")
			staff.Use(authMiddleware.RequireAuth())
			addRoutes(staff, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodGet, Path: "/:id/history", Handler: h.Reservation.GetHistory},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.CancelByID},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reservation.ConfirmReservation},
				{Method: http.MethodPost, Path: "/:id/arrive", Handler: h.Reservation.RecordArrival},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.CompleteReservation},
			})
		}

		apiGroup.GET("/slots/resolve", h.Slot.Resolve)

		tables := apiGroup.Group("/tables")
		tables.Use(authMiddleware.RequireAuth())
		{
			addRoutes(tables, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Table.Board},
				{Method: http.MethodPost, Path: "/:id/maintenance", Handler: h.Table.SetMaintenance},
				{Method: http.MethodDelete, Path: "/:id/maintenance", Handler: h.Table.ReturnToService},
			})
		}

		voice := apiGroup.Group("/voice")
		{
			// The webhook is authenticated by the provider signature, not a staff token.
			voice.POST("/webhook", h.Voice.Webhook)

			managed := voice.Group("")
			managed.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(jwt.RoleManager))
			addRoutes(managed, []route{
				{Method: http.MethodPost, Path: "/agents", Handler: h.Voice.CreateAgent},
				{Method: http.MethodPut, Path: "/agents/:id", Handler: h.Voice.UpdateAgent},
				{Method: http.MethodDelete, Path: "/agents/:id", Handler: h.Voice.DeleteAgent},
				{Method: http.MethodPost, Path: "/calls", Handler: h.Voice.StartCall},
				{Method: http.MethodPost, Path: "/calls/:id/end", Handler: h.Voice.EndCall},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(jwt.RoleManager))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: h.Admin.Sweep},
				{Method: http.MethodGet, Path: "/breaker", Handler: h.Admin.BreakerState},
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
