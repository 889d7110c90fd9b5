package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CellIDPrefix tags drop target identifiers.
const CellIDPrefix = "cell"

// CellKey addresses a cell inside a period's assignment map.
type CellKey struct {
	Date string
	Slot int
}

// String renders the snapshot form "<ISO date>|<slot>".
func (k CellKey) String() string {
	return fmt.Sprintf("%s|%d", k.Date, k.Slot)
}

// ParseCellKey reads the snapshot form of a cell key.
func ParseCellKey(raw string) (CellKey, error) {
	idx := strings.LastIndex(raw, "|")
	if idx <= 0 {
		return CellKey{}, fmt.Errorf("cell key %q: missing separator", raw)
	}
	slot, err := strconv.Atoi(raw[idx+1:])
	if err != nil || slot < 0 {
		return CellKey{}, fmt.Errorf("cell key %q: invalid slot index", raw)
	}
	return CellKey{Date: raw[:idx], Slot: slot}, nil
}

// CellRef is a fully qualified cell: period plus key.
type CellRef struct {
	PeriodID int    `json:"periodId"`
	Date     string `json:"date"`
	Slot     int    `json:"slot"`
}

// Key drops the period part.
func (r CellRef) Key() CellKey {
	return CellKey{Date: r.Date, Slot: r.Slot}
}

// ID renders the drop target identifier "cell:<periodId>:<date>:<slot>".
func (r CellRef) ID() string {
	return fmt.Sprintf("%s:%d:%s:%d", CellIDPrefix, r.PeriodID, r.Date, r.Slot)
}

// ParseCellID parses a drop target identifier. Identifiers without the cell
// tag are rejected.
func ParseCellID(raw string) (CellRef, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 || parts[0] != CellIDPrefix {
		return CellRef{}, fmt.Errorf("drop target %q is not a cell", raw)
	}
	periodID, err := strconv.Atoi(parts[1])
	if err != nil {
		return CellRef{}, fmt.Errorf("drop target %q: invalid period id", raw)
	}
	slot, err := strconv.Atoi(parts[3])
	if err != nil || slot < 0 {
		return CellRef{}, fmt.Errorf("drop target %q: invalid slot index", raw)
	}
	if parts[2] == "" {
		return CellRef{}, fmt.Errorf("drop target %q: missing date", raw)
	}
	return CellRef{PeriodID: periodID, Date: parts[2], Slot: slot}, nil
}
