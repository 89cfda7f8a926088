package reservation

import (
	"time"

	"tablekeeper/internal/domain/table"
)

// Filter selects reservations; zero fields match everything.
type Filter struct {
	Date    *time.Time
	Status  *Status
	TableID table.ID
	Phone   *Phone
	Name    string
}

func (f Filter) Matches(r *Reservation) bool {
	if f.Date != nil && r.date.Format(time.DateOnly) != f.Date.Format(time.DateOnly) {
		return false
	}
	if f.Status != nil && r.status != *f.Status {
		return false
	}
	if f.TableID != "" && r.tableID != f.TableID {
		return false
	}
	if f.Phone != nil && !f.Phone.Matches(r.clientPhone) {
		return false
	}
	if f.Name != "" && !r.clientName.Matches(f.Name) {
		return false
	}
	return true
}
