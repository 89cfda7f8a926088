package eventbus

import (
	"context"
	"log/slog"

	"tablekeeper/internal/domain/event"
)

// LogSubscriber writes one structured line per event.
func LogSubscriber(logger *slog.Logger) Handler {
	return func(ctx context.Context, e event.Event) error {
		attrs := []any{slog.String("kind", string(e.Kind())), slog.Time("occurred_at", e.At())}
		switch ev := e.(type) {
		case event.ReservationConfirmed:
			attrs = append(attrs,
				slog.String("reservation_id", ev.Reservation.ID.String()),
				slog.String("table_id", ev.Table.ID.String()),
				slog.Int("party_size", ev.Reservation.PartySize),
			)
		case event.ReservationCancelled:
			attrs = append(attrs,
				slog.String("reservation_id", ev.Reservation.ID.String()),
				slog.Bool("table_released", ev.TableReleased),
			)
		case event.TableStateChanged:
			attrs = append(attrs,
				slog.String("table_id", ev.Table.ID.String()),
				slog.String("from", ev.PreviousStatus.String()),
				slog.String("to", ev.Table.Status.String()),
				slog.String("reason", ev.Reason),
			)
		case event.ReservationAutoCompleted:
			attrs = append(attrs,
				slog.String("reservation_id", ev.Reservation.ID.String()),
				slog.String("table_id", ev.Table.ID.String()),
				slog.Duration("elapsed", ev.Elapsed),
			)
		}
		logger.InfoContext(ctx, "domain event", attrs...)
		return nil
	}
}
