package api

import (
	"net/http"

	reqdto "tablekeeper/internal/handler/dto/request"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/handler/httperr"
	"tablekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	q queries.SlotQueries
}

func NewSlotHandler(q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{q: q}
}

// @Summary Resolve slot
// @Description Preview how a free-form time maps onto the seating schedule
// @Tags slots
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Requested time, e.g. 21:00 or 9pm"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /slots/resolve [get]
func (h *SlotHandler) Resolve(c *gin.Context) {
	var req reqdto.ResolveSlotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	view, err := h.q.Resolve(req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}
