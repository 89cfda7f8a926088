package api

import (
	"context"
	"net/http"

	"tablekeeper/internal/domain/reservation"
	reqdto "tablekeeper/internal/handler/dto/request"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/handler/httperr"
	"tablekeeper/internal/handler/middleware"
	"tablekeeper/internal/pkg/errs"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errStaffOnly = errs.New("field is reserved for staff")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Resolve the requested slot, allocate a table and confirm the reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.AllocationErrorResponse
// @Failure 422 {object} resdto.AllocationErrorResponse
// @Failure 503 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if !middleware.IsStaff(c) && (req.GetTableID() != "" || req.GetSource() == reservation.SourceStaff) {
		httperr.AbortWithError(c, http.StatusForbidden, errStaffOnly, "Only staff can pick a table", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/reservations/"+result.Reservation.ID.String())
	c.JSON(http.StatusCreated, resdto.FromCreateReservationResult(result))
}

// @Summary List reservations
// @Description List reservations ordered by start time
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param status query string false "Reservation status"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var req reqdto.ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	page, err := h.q.List(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	snap, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationSnapshot(*snap))
}

// @Summary Reservation history
// @Description Events recorded for a reservation, oldest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.HistoryEntryResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reservations/{id}/history [get]
func (h *ReservationHandler) GetHistory(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	entries, err := h.q.History(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHistory(entries))
}

// @Summary Cancel reservation by phone and name
// @Description Without confirm the match is returned; with confirm it is cancelled
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CancelReservationRequest true "Cancel request"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	var req reqdto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CancelReservation(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelReservationResult(result))
}

// @Summary Cancel reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelByID(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	result, err := h.cmds.CancelByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelReservationResult(result))
}

// @Summary Confirm pending reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.transition(c, h.cmds.ConfirmReservation)
}

// @Summary Record arrival
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/arrive [post]
func (h *ReservationHandler) RecordArrival(c *gin.Context) {
	h.transition(c, h.cmds.RecordArrival)
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, h.cmds.CompleteReservation)
}

func (h *ReservationHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error)) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	snap, err := apply(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationSnapshot(*snap))
}

func reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
