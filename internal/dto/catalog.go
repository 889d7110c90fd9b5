package dto

import "time"

// SubjectRequest creates a subject manually.
type SubjectRequest struct {
	ID    string `json:"id"`
	Code  string `json:"code" validate:"required_without=Label"`
	Label string `json:"label" validate:"required_without=Code"`
	Level string `json:"level"`
}

// CatalogImportResult reports a bulk catalog import.
type CatalogImportResult struct {
	Accepted int   `json:"accepted"`
	Skipped  int   `json:"skipped"`
	Revision int64 `json:"revision"`
}

// SnapshotImportResult lists the snapshot fields an import replaced.
type SnapshotImportResult struct {
	Applied  []string `json:"applied"`
	Ignored  []string `json:"ignored,omitempty"`
	Revision int64    `json:"revision"`
}

// ArchiveRequest labels a stored snapshot.
type ArchiveRequest struct {
	Label string `json:"label" validate:"max=120"`
}

// ExportRow is one (period, day, slot, subject) line of the flat exports.
type ExportRow struct {
	Period string `json:"period"`
	Date   string `json:"date"`
	Slot   int    `json:"slot"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Code   string `json:"code"`
	Label  string `json:"label"`
	Level  string `json:"level"`
}

// SavedExport describes an export written to file storage.
type SavedExport struct {
	Path      string     `json:"path"`
	Format    string     `json:"format"`
	Revision  int64      `json:"revision"`
	Size      int        `json:"size"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
