package order

import "time"

// SystemActor is recorded as changedBy when the caller does not name one.
const SystemActor = "SYSTEM"

const ChangedByMaxLength = 100

// HistoryEntry is one row of the append-only status log of an order.
type HistoryEntry struct {
	id        int64
	status    Status
	notes     *string
	changedBy string
	createdAt time.Time
}

func newHistoryEntry(status Status, notes *string, changedBy string, at time.Time) HistoryEntry {
	if changedBy == "" {
		changedBy = SystemActor
	}
	return HistoryEntry{status: status, notes: notes, changedBy: changedBy, createdAt: at}
}

// RestoreHistoryEntry rebuilds a persisted history row.
func RestoreHistoryEntry(id int64, status Status, notes *string, changedBy string, createdAt time.Time) HistoryEntry {
	return HistoryEntry{id: id, status: status, notes: notes, changedBy: changedBy, createdAt: createdAt}
}

func (h HistoryEntry) ID() int64 { return h.id }
func (h HistoryEntry) Status() Status { return h.status }
func (h HistoryEntry) Notes() *string { return h.notes }
func (h HistoryEntry) ChangedBy() string { return h.changedBy }
func (h HistoryEntry) CreatedAt() time.Time { return h.createdAt }
