package models

// Subject is a schedulable catalog entry. Assignments reference it by ID only.
type Subject struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
	Level string `json:"level"`
}

// SubjectPatch carries the editable subject fields.
type SubjectPatch struct {
	Code  *string `json:"code"`
	Label *string `json:"label"`
	Level *string `json:"level"`
}
