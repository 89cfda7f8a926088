package api

import (
	"errors"
	"net/http"

	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/handler/httperr"
	"tablekeeper/internal/pkg/errs"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

func allocationStatus(kind commands.ErrorKind) int {
	switch kind {
	case commands.KindSlotMismatch, commands.KindOutsideHours, commands.KindUnparseableTime,
		commands.KindClosed, commands.KindPastDate:
		return http.StatusUnprocessableEntity
	case commands.KindUnknownRestaurant:
		return http.StatusNotFound
	case commands.KindNoAvailability, commands.KindTimeOverlap, commands.KindCapacityExceeded,
		commands.KindOutOfService:
		return http.StatusConflict
	case commands.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

// abortWithUsecaseError maps command and query errors to HTTP statuses. An
// AllocationError carries its kind and alternatives in the detail field.
func abortWithUsecaseError(c *gin.Context, err error) {
	var allocErr *commands.AllocationError
	if errors.As(err, &allocErr) {
		httperr.AbortWithError(c, allocationStatus(allocErr.Kind), err, allocErr.Error(), resdto.FromAllocationError(allocErr))
		return
	}

	switch {
	case errs.Is(err, commands.ErrReservationNotFound), errs.Is(err, queries.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, commands.ErrTableNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Table not found", nil)
	case errs.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid state transition", nil)
	case errs.Is(err, commands.ErrNotCancellable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation can no longer be cancelled", nil)
	case errs.Is(err, commands.ErrDomainValidation), errs.Is(err, queries.ErrInvalidQuery),
		errs.Is(err, commands.ErrInvalidPayload), errs.Is(err, errs.ErrInvalidRequest):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, commands.ErrInvalidSignature):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid signature", nil)
	case errs.Is(err, queries.ErrHistoryUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "History is not available", nil)
	case errs.Is(err, commands.ErrEngineClosed), errs.Is(err, errs.ErrServiceUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
