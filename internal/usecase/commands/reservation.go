package commands

//go:generate mockgen -destination=../../../tests/mock/commands/reservation.go -package=commandsmock tablekeeper/internal/usecase/commands ReservationCommands

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/infra"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Allocation outcomes reported to the observer.
const (
	OutcomeConfirmed = "confirmed"
	OutcomePending   = "pending"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type CreateReservationResult struct {
	Success     bool
	Reservation reservation.Snapshot
	Table       table.Snapshot
	Score       allocation.Breakdown
	Attempts    int
}

type CancelOutcome string

const (
	CancelConfirmationRequired CancelOutcome = "ConfirmationRequired"
	CancelCommitted            CancelOutcome = "Cancelled"
	CancelAlreadyCancelled     CancelOutcome = "AlreadyCancelled"
)

type CancelReservationResult struct {
	Success       bool
	Outcome       CancelOutcome
	Reservation   reservation.Snapshot
	TableReleased bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, req reqdto.CancelReservationRequest) (*CancelReservationResult, error)
	CancelByID(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error)
	ConfirmReservation(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error)
	RecordArrival(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error)
	CompleteReservation(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error)
}

type reservationCommandsImpl struct {
	registry  TableRegistry
	store     ReservationStore
	usage     UsageCounter
	publisher EventPublisher
	observer  AllocationObserver
	resolver  *turn.Resolver
	factory   *reservation.Factory
	clock     clock.Clock
	policy    config.AllocationConfig
	logger    *slog.Logger
}

func NewReservationCommands(
	registry TableRegistry,
	store ReservationStore,
	usage UsageCounter,
	publisher EventPublisher,
	observer AllocationObserver,
	resolver *turn.Resolver,
	factory *reservation.Factory,
	clock clock.Clock,
	policy config.AllocationConfig,
	logger *slog.Logger,
) ReservationCommands {
	if policy.MaxCASRetries < 1 {
		policy.MaxCASRetries = 1
	}
	return &reservationCommandsImpl{
		registry:  registry,
		store:     store,
		usage:     usage,
		publisher: publisher,
		observer:  observer,
		resolver:  resolver,
		factory:   factory,
		clock:     clock,
		policy:    policy,
		logger:    logger,
	}
}

func (u *reservationCommandsImpl) CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest) (*CreateReservationResult, error) {
	draft, err := u.buildDraft(req)
	if err != nil {
		u.observer.ObserveAllocation(OutcomeRejected, 0)
		return nil, err
	}
	base, err := u.factory.CreateReservation(draft)
	if err != nil {
		u.observer.ObserveAllocation(OutcomeRejected, 0)
		return nil, newAllocationError(KindInvalidRequest, errs.Mark(err, ErrDomainValidation), nil)
	}

	for attempt := 1; attempt <= u.policy.MaxCASRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			u.observer.ObserveAllocation(OutcomeFailed, attempt-1)
			return nil, err
		}
		result, err := u.allocate(ctx, base, req.GetTableID())
		if err == nil {
			result.Attempts = attempt
			outcome := OutcomeConfirmed
			if result.Reservation.Status == reservation.StatusPending {
				outcome = OutcomePending
			}
			u.observer.ObserveAllocation(outcome, attempt)
			return result, nil
		}
		if infra.IsKind(err, infra.KindVersionMismatch) {
			u.logger.Debug("table claim lost a race, retrying",
				slog.String("reservation_id", base.ID().String()),
				slog.Int("attempt", attempt),
			)
			continue
		}

		var allocErr *AllocationError
		if errors.As(err, &allocErr) {
			u.observer.ObserveAllocation(OutcomeRejected, attempt)
		} else {
			u.observer.ObserveAllocation(OutcomeFailed, attempt)
		}
		return nil, err
	}

	u.observer.ObserveAllocation(OutcomeFailed, u.policy.MaxCASRetries)
	u.logger.Warn("allocation gave up after repeated claim races",
		slog.String("reservation_id", base.ID().String()),
		slog.Int("attempts", u.policy.MaxCASRetries),
	)
	return nil, newAllocationError(KindAllocationFailed, errs.ErrConcurrentModification, nil)
}

func (u *reservationCommandsImpl) buildDraft(req reqdto.CreateReservationRequest) (reservation.Draft, error) {
	schedule := u.resolver.Schedule()
	date, err := schedule.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return reservation.Draft{}, newAllocationError(KindInvalidRequest, errs.Mark(err, ErrDomainValidation), nil)
	}

	slot, err := u.resolver.Resolve(req.Time, date, "")
	if err != nil {
		var se *turn.SlotError
		if errors.As(err, &se) {
			return reservation.Draft{}, slotError(se, date.Format(time.DateOnly), req.PartySize)
		}
		return reservation.Draft{}, err
	}

	draft, err := req.ToDraft(slot)
	if err != nil {
		return reservation.Draft{}, newAllocationError(KindInvalidRequest, errs.Mark(err, ErrDomainValidation), nil)
	}
	return draft, nil
}

// allocate runs one pass of select, claim and record against a fresh table
// snapshot. A lost compare-and-swap comes back as a version mismatch.
func (u *reservationCommandsImpl) allocate(ctx context.Context, base *reservation.Reservation, tableID table.ID) (*CreateReservationResult, error) {
	tables, err := u.registry.List()
	if err != nil {
		return nil, registryError(err)
	}

	req := allocation.Request{
		PartySize:    base.PartySize(),
		Location:     base.Location(),
		SpecialNeeds: base.SpecialNeeds(),
	}

	var chosen allocation.Scored
	if tableID != "" {
		chosen, err = u.pickExplicit(ctx, base, tableID, req, tables)
	} else {
		chosen, err = u.pickBest(ctx, base, req, tables)
	}
	if err != nil {
		return nil, err
	}

	tbl := chosen.Candidate.Table
	now := u.clock.Now()
	claimed, err := tbl.Claim(base.ID(), now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if err := u.registry.CompareAndSwap(claimed, tbl.Version()); err != nil {
		if infra.IsKind(err, infra.KindVersionMismatch) {
			return nil, err
		}
		return nil, registryError(err)
	}

	r := base.Clone()
	if err := r.AssignTable(claimed.ID(), claimed.Location(), now); err != nil {
		u.rollbackClaim(claimed.ID(), r.ID())
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if !u.policy.ManualApproval() {
		if err := r.Confirm(now); err != nil {
			u.rollbackClaim(claimed.ID(), r.ID())
			return nil, errs.Mark(err, ErrInvalidTransition)
		}
	}
	if err := u.store.Insert(ctx, r); err != nil {
		u.rollbackClaim(claimed.ID(), r.ID())
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	u.publisher.Publish(event.TableChanged(tbl, claimed, event.ReasonClaimed, now))
	snap := r.Snapshot()
	if r.Status() == reservation.StatusConfirmed {
		u.publisher.Publish(event.ReservationConfirmed{Reservation: snap, Table: claimed.Snapshot(), OccurredAt: now})
	}

	u.logger.Info("reservation allocated",
		slog.String("reservation_id", r.ID().String()),
		slog.String("table_id", claimed.ID().String()),
		slog.Int("party_size", r.PartySize()),
		slog.Int("score", chosen.Score),
		slog.String("status", r.Status().String()),
	)

	return &CreateReservationResult{
		Success:     true,
		Reservation: snap,
		Table:       claimed.Snapshot(),
		Score:       chosen.Breakdown,
	}, nil
}

func (u *reservationCommandsImpl) pickExplicit(ctx context.Context, base *reservation.Reservation, id table.ID, req allocation.Request, tables []table.Table) (allocation.Scored, error) {
	tbl, err := u.registry.Get(id)
	if err != nil {
		return allocation.Scored{}, registryError(err)
	}
	existing, err := u.store.ActiveOnTable(ctx, id)
	if err != nil {
		return allocation.Scored{}, errs.Mark(err, ErrStoreFailure)
	}
	report := allocation.CheckConflict(tbl, base.PartySize(), base.StartsAt(), base.Duration(), existing)
	if report.HasConflict {
		return allocation.Scored{}, conflictError(report, u.suggest(base, tables))
	}
	c := allocation.Candidate{Table: tbl, UseCount: u.useCount(ctx, id)}
	b := allocation.Score(c, req)
	return allocation.Scored{Candidate: c, Breakdown: b, Score: b.Total()}, nil
}

func (u *reservationCommandsImpl) pickBest(ctx context.Context, base *reservation.Reservation, req allocation.Request, tables []table.Table) (allocation.Scored, error) {
	if report := allocation.CheckAvailability(tables, base.PartySize()); report.HasConflict {
		return allocation.Scored{}, conflictError(report, u.suggest(base, tables))
	}

	candidates := make([]allocation.Candidate, 0, len(tables))
	for _, t := range tables {
		if !t.IsFree() || !t.Fits(base.PartySize()) {
			continue
		}
		candidates = append(candidates, allocation.Candidate{Table: t, UseCount: u.useCount(ctx, t.ID())})
	}

	for _, s := range allocation.Rank(candidates, req) {
		existing, err := u.store.ActiveOnTable(ctx, s.Candidate.Table.ID())
		if err != nil {
			return allocation.Scored{}, errs.Mark(err, ErrStoreFailure)
		}
		report := allocation.CheckConflict(s.Candidate.Table, base.PartySize(), base.StartsAt(), base.Duration(), existing)
		if !report.HasConflict {
			return s, nil
		}
	}

	report := allocation.ConflictReport{HasConflict: true, Kind: allocation.KindNoAvailability}
	return allocation.Scored{}, conflictError(report, u.suggest(base, tables))
}

func (u *reservationCommandsImpl) suggest(base *reservation.Reservation, tables []table.Table) []allocation.Alternative {
	return allocation.Suggest(u.resolver.Schedule(), base.Date(), base.Slot(), base.PartySize(), tables)
}

// useCount degrades to zero when the usage source is unavailable; the
// load-balancing term is advisory.
func (u *reservationCommandsImpl) useCount(ctx context.Context, id table.ID) int {
	n, err := u.usage.UseCount(ctx, id)
	if err != nil {
		u.logger.Warn("table usage unavailable", slog.String("table_id", id.String()), slog.Any("error", err))
		return 0
	}
	return n
}

// rollbackClaim frees a table whose reservation could not be recorded.
func (u *reservationCommandsImpl) rollbackClaim(id table.ID, reservationID uuid.UUID) {
	before, after, err := swapTable(u.registry, id, u.policy.MaxCASRetries, func(t table.Table) (table.Table, error) {
		return t.Release(reservationID, u.clock.Now())
	})
	if err != nil {
		u.logger.Error("failed to roll back table claim",
			slog.String("table_id", id.String()),
			slog.String("reservation_id", reservationID.String()),
			slog.Any("error", err),
		)
		return
	}
	u.publisher.Publish(event.TableChanged(before, after, event.ReasonRollback, after.LastUpdated()))
}

func (u *reservationCommandsImpl) CancelReservation(ctx context.Context, req reqdto.CancelReservationRequest) (*CancelReservationResult, error) {
	filter, err := req.ToFilter(u.resolver.Schedule().Location())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	matches, err := u.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if len(matches) == 0 {
		return nil, ErrReservationNotFound
	}

	target := pickCancellable(matches, u.clock.Now())
	if target == nil {
		for _, m := range matches {
			if m.IsCancelled() {
				return &CancelReservationResult{Outcome: CancelAlreadyCancelled, Reservation: m.Snapshot()}, nil
			}
		}
		return nil, ErrNotCancellable
	}

	if !req.Confirm {
		return &CancelReservationResult{Outcome: CancelConfirmationRequired, Reservation: target.Snapshot()}, nil
	}
	return u.cancel(ctx, target.ID())
}

// pickCancellable orders matches most recently created first, ties going to
// the soonest upcoming start, and returns the first still cancellable.
func pickCancellable(matches []*reservation.Reservation, now time.Time) *reservation.Reservation {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b *reservation.Reservation) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(distanceFrom(now, a.StartsAt()), distanceFrom(now, b.StartsAt()))
	})
	for _, r := range sorted {
		if s := r.Status(); s == reservation.StatusPending || s == reservation.StatusConfirmed {
			return r
		}
	}
	return nil
}

func distanceFrom(now, t time.Time) time.Duration {
	if d := t.Sub(now); d >= 0 {
		return d
	}
	return now.Sub(t) + 365*24*time.Hour
}

func (u *reservationCommandsImpl) CancelByID(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error) {
	return u.cancel(ctx, id)
}

func (u *reservationCommandsImpl) cancel(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error) {
	now := u.clock.Now()
	r, err := u.store.Update(ctx, id, func(r *reservation.Reservation) error {
		return r.Cancel(now)
	})
	switch {
	case errors.Is(err, reservation.ErrAlreadyCancelled):
		cur, getErr := u.store.Get(ctx, id)
		if getErr != nil {
			return nil, u.storeError(getErr)
		}
		return &CancelReservationResult{Outcome: CancelAlreadyCancelled, Reservation: cur.Snapshot()}, nil
	case errors.Is(err, reservation.ErrNotCancellable):
		return nil, errs.Mark(err, ErrNotCancellable)
	case err != nil:
		return nil, u.storeError(err)
	}

	released := false
	if r.TableID() != "" {
		released = u.releaseIfHeld(r.TableID(), r.ID(), event.ReasonReleased)
	}

	snap := r.Snapshot()
	u.publisher.Publish(event.ReservationCancelled{Reservation: snap, TableReleased: released, OccurredAt: now})
	u.logger.Info("reservation cancelled",
		slog.String("reservation_id", id.String()),
		slog.Bool("table_released", released),
	)
	return &CancelReservationResult{Success: true, Outcome: CancelCommitted, Reservation: snap, TableReleased: released}, nil
}

// releaseIfHeld frees the table only while it is still held by reservationID.
func (u *reservationCommandsImpl) releaseIfHeld(id table.ID, reservationID uuid.UUID, reason string) bool {
	before, after, err := swapTable(u.registry, id, u.policy.MaxCASRetries, func(t table.Table) (table.Table, error) {
		return t.Release(reservationID, u.clock.Now())
	})
	if err != nil {
		if !errs.Is(err, ErrInvalidTransition) {
			u.logger.Error("failed to release table",
				slog.String("table_id", id.String()),
				slog.String("reservation_id", reservationID.String()),
				slog.Any("error", err),
			)
		}
		return false
	}
	u.publisher.Publish(event.TableChanged(before, after, reason, after.LastUpdated()))
	return true
}

func (u *reservationCommandsImpl) ConfirmReservation(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error) {
	now := u.clock.Now()
	r, err := u.store.Update(ctx, id, func(r *reservation.Reservation) error {
		return r.Confirm(now)
	})
	if err != nil {
		return nil, u.storeError(err)
	}

	snap := r.Snapshot()
	var tblSnap table.Snapshot
	if tbl, err := u.registry.Get(r.TableID()); err == nil {
		tblSnap = tbl.Snapshot()
	}
	u.publisher.Publish(event.ReservationConfirmed{Reservation: snap, Table: tblSnap, OccurredAt: now})
	return &snap, nil
}

// RecordArrival seats the party: the table moves to occupied first, and is
// moved back if the reservation cannot follow.
func (u *reservationCommandsImpl) RecordArrival(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error) {
	cur, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, u.storeError(err)
	}
	if cur.Status() != reservation.StatusConfirmed {
		return nil, errs.Mark(reservation.ErrInvalidTransition, ErrInvalidTransition)
	}
	if cur.TableID() == "" {
		return nil, errs.Mark(errs.New("reservation has no table"), ErrInvalidTransition)
	}

	now := u.clock.Now()
	before, seated, err := swapTable(u.registry, cur.TableID(), u.policy.MaxCASRetries, func(t table.Table) (table.Table, error) {
		return t.Seat(id, now)
	})
	if err != nil {
		return nil, err
	}

	r, err := u.store.Update(ctx, id, func(r *reservation.Reservation) error {
		return r.Arrive(now)
	})
	if err != nil {
		if _, _, undoErr := swapTable(u.registry, cur.TableID(), u.policy.MaxCASRetries, func(t table.Table) (table.Table, error) {
			return t.Unseat(id, u.clock.Now())
		}); undoErr != nil {
			u.logger.Error("failed to undo seating",
				slog.String("table_id", cur.TableID().String()),
				slog.String("reservation_id", id.String()),
				slog.Any("error", undoErr),
			)
		}
		return nil, u.storeError(err)
	}

	u.publisher.Publish(event.TableChanged(before, seated, event.ReasonSeated, now))
	snap := r.Snapshot()
	return &snap, nil
}

// CompleteReservation is the explicit checkout. Auto-release does the same
// for parties nobody checked out.
func (u *reservationCommandsImpl) CompleteReservation(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error) {
	now := u.clock.Now()
	r, err := u.store.Update(ctx, id, func(r *reservation.Reservation) error {
		return r.Complete(now)
	})
	if err != nil {
		return nil, u.storeError(err)
	}
	if r.TableID() != "" {
		u.releaseIfHeld(r.TableID(), r.ID(), event.ReasonReleased)
	}
	snap := r.Snapshot()
	return &snap, nil
}

func (u *reservationCommandsImpl) storeError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrReservationNotFound)
	case errors.Is(err, reservation.ErrInvalidTransition),
		errors.Is(err, reservation.ErrNotCancellable),
		errors.Is(err, reservation.ErrAlreadyCancelled):
		return errs.Mark(err, ErrInvalidTransition)
	default:
		return errs.Mark(err, ErrStoreFailure)
	}
}
