package commands

import (
	"fmt"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/pkg/errs"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrTableNotFound       = errs.New("table not found")
	ErrInvalidTransition   = errs.New("invalid state transition")
	ErrNotCancellable      = errs.New("reservation can no longer be cancelled")
	ErrDomainValidation    = errs.New("domain validation error")
	ErrStoreFailure        = errs.New("store operation failed")
	ErrEngineClosed        = errs.New("engine is shut down")
)

// ErrorKind is the structured reason returned to the caller of CreateReservation.
type ErrorKind string

const (
	KindSlotMismatch      ErrorKind = "SlotMismatch"
	KindOutsideHours      ErrorKind = "OutsideHours"
	KindUnparseableTime   ErrorKind = "UnparseableTime"
	KindClosed            ErrorKind = "Closed"
	KindPastDate          ErrorKind = "PastDate"
	KindUnknownRestaurant ErrorKind = "UnknownRestaurant"
	KindNoAvailability    ErrorKind = "NoAvailability"
	KindTimeOverlap       ErrorKind = "TimeOverlap"
	KindCapacityExceeded  ErrorKind = "CapacityExceeded"
	KindOutOfService      ErrorKind = "OutOfService"
	KindAllocationFailed  ErrorKind = "AllocationFailed"
	KindInvalidRequest    ErrorKind = "InvalidRequest"
)

// Recoverable reports kinds the caller can fix by adjusting the request.
func (k ErrorKind) Recoverable() bool {
	return k != KindAllocationFailed && k != KindInvalidRequest
}

// AllocationError is the typed failure of CreateReservation. No partial state
// exists when it is returned.
type AllocationError struct {
	Kind         ErrorKind
	Alternatives []allocation.Alternative
	Conflict     *allocation.ConflictReport
	cause        error
}

func (e *AllocationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return string(e.Kind)
}

func (e *AllocationError) Unwrap() error { return e.cause }

func newAllocationError(kind ErrorKind, cause error, alts []allocation.Alternative) *AllocationError {
	return &AllocationError{Kind: kind, Alternatives: alts, cause: cause}
}

func conflictError(report allocation.ConflictReport, alts []allocation.Alternative) *AllocationError {
	kind := KindNoAvailability
	switch report.Kind {
	case allocation.KindTimeOverlap:
		kind = KindTimeOverlap
	case allocation.KindCapacityExceeded:
		kind = KindCapacityExceeded
	case allocation.KindOutOfService:
		kind = KindOutOfService
	}
	return &AllocationError{Kind: kind, Alternatives: alts, Conflict: &report}
}

// slotError converts a resolver rejection; its suggested starts become shifted-time alternatives.
func slotError(se *turn.SlotError, date string, partySize int) *AllocationError {
	alts := make([]allocation.Alternative, 0, len(se.Alternatives))
	for _, tod := range se.Alternatives {
		alts = append(alts, allocation.Alternative{
			Kind:      allocation.AltShiftedTime,
			Date:      date,
			Time:      tod,
			PartySize: partySize,
		})
	}
	kind := KindSlotMismatch
	switch se.Kind {
	case turn.KindOutsideHours:
		kind = KindOutsideHours
	case turn.KindUnparseableTime:
		kind = KindUnparseableTime
	case turn.KindClosed:
		kind = KindClosed
	case turn.KindPastDate:
		kind = KindPastDate
	case turn.KindUnknownRestaurant:
		kind = KindUnknownRestaurant
	}
	return newAllocationError(kind, se, alts)
}
