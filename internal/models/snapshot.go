package models

import "time"

// Snapshot is the serialized board used for export and import.
type Snapshot struct {
	Periods           []Period                    `json:"periods"`
	SlotsPerPeriod    map[int][]TimeSlot          `json:"slotsPerPeriod"`
	AssignedPerPeriod map[int]map[string][]string `json:"assignedPerPeriod"`
	Subjects          []Subject                   `json:"subjects"`
}

// SnapshotArchive is a stored snapshot.
type SnapshotArchive struct {
	ID        string    `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	Payload   []byte    `db:"payload" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
