package components

import (
	"tablekeeper/internal/handler"
	"tablekeeper/internal/handler/api"
	"tablekeeper/internal/handler/middleware"
	"tablekeeper/internal/infra/metrics"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/usecase/queries"
	"tablekeeper/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewTableHandler,
		api.NewSlotHandler,
		api.NewVoiceHandler,
		NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(NewRouter),
)

func NewAdminHandler(w *worker.AutoReleaseWorker, b queries.BreakerQueries) *api.AdminHandler {
	return api.NewAdminHandler(w, b)
}

type RouterParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Auth        *middleware.AuthMiddleware
	Metrics     *metrics.Metrics
	Reservation *api.ReservationHandler
	Table       *api.TableHandler
	Slot        *api.SlotHandler
	Voice       *api.VoiceHandler
	Admin       *api.AdminHandler
}

func NewRouter(p RouterParams) {
	handler.NewRouter(p.Engine, p.Config, handler.Handlers{
		Reservation: p.Reservation,
		Table:       p.Table,
		Slot:        p.Slot,
		Voice:       p.Voice,
		Admin:       p.Admin,
	}, p.Auth, p.Metrics, p.Metrics.Handler())
}
