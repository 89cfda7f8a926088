package api

import (
	"context"
	"net/http"

	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// Sweeper runs one auto-release pass on demand.
type Sweeper interface {
	RunOnce(ctx context.Context) (*commands.SweepResult, error)
}

type AdminHandler struct {
	sweeper Sweeper
	breaker queries.BreakerQueries
}

func NewAdminHandler(sweeper Sweeper, breaker queries.BreakerQueries) *AdminHandler {
	return &AdminHandler{sweeper: sweeper, breaker: breaker}
}

// @Summary Run auto-release sweep
// @Description Complete occupied reservations past the release threshold
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	result, err := h.sweeper.RunOnce(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}

// @Summary Voice provider breaker state
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BreakerResponse
// @Router /admin/breaker [get]
func (h *AdminHandler) BreakerState(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromBreakerView(h.breaker.State()))
}
