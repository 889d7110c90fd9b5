package models

import "sort"

// Board is the complete planner state: periods, their slots and assignment
// maps, and the subject catalog.
type Board struct {
	Periods        []Period
	Slots          map[int][]TimeSlot
	Assignments    map[int]map[CellKey][]string
	Subjects       []Subject
	ActivePeriodID int
}

// NewBoard returns an empty board with initialised maps.
func NewBoard() *Board {
	return &Board{
		Slots:       make(map[int][]TimeSlot),
		Assignments: make(map[int]map[CellKey][]string),
	}
}

// Clone deep-copies the board so updates can be applied all-or-nothing.
func (b *Board) Clone() *Board {
	out := &Board{
		Periods:        append([]Period(nil), b.Periods...),
		Slots:          make(map[int][]TimeSlot, len(b.Slots)),
		Assignments:    make(map[int]map[CellKey][]string, len(b.Assignments)),
		Subjects:       append([]Subject(nil), b.Subjects...),
		ActivePeriodID: b.ActivePeriodID,
	}
	for id, slots := range b.Slots {
		out.Slots[id] = append([]TimeSlot(nil), slots...)
	}
	for id, cells := range b.Assignments {
		copied := make(map[CellKey][]string, len(cells))
		for key, ids := range cells {
			copied[key] = append([]string(nil), ids...)
		}
		out.Assignments[id] = copied
	}
	return out
}

// Period looks up a period by id.
func (b *Board) Period(id int) (Period, bool) {
	for _, p := range b.Periods {
		if p.ID == id {
			return p, true
		}
	}
	return Period{}, false
}

// PeriodIndex returns the position of the period in store order, or -1.
func (b *Board) PeriodIndex(id int) int {
	for i, p := range b.Periods {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NextPeriodID is max existing id + 1.
func (b *Board) NextPeriodID() int {
	next := 1
	for _, p := range b.Periods {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// LowestPeriodID returns the smallest period id, or 0 when empty.
func (b *Board) LowestPeriodID() int {
	lowest := 0
	for _, p := range b.Periods {
		if lowest == 0 || p.ID < lowest {
			lowest = p.ID
		}
	}
	return lowest
}

// CellSubjects returns the ids stored in a cell. Missing cells are empty.
func (b *Board) CellSubjects(periodID int, key CellKey) []string {
	cells := b.Assignments[periodID]
	if cells == nil {
		return nil
	}
	return cells[key]
}

// Locate finds the cell currently holding subjectID.
func (b *Board) Locate(subjectID string) (CellRef, bool) {
	for periodID, cells := range b.Assignments {
		for key, ids := range cells {
			for _, id := range ids {
				if id == subjectID {
					return CellRef{PeriodID: periodID, Date: key.Date, Slot: key.Slot}, true
				}
			}
		}
	}
	return CellRef{}, false
}

// UsedSubjectIDs is the union of all cells' subject ids, sorted.
func (b *Board) UsedSubjectIDs() []string {
	seen := make(map[string]struct{})
	for _, cells := range b.Assignments {
		for _, ids := range cells {
			for _, id := range ids {
				seen[id] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Subject resolves a catalog record by id.
func (b *Board) Subject(id string) (Subject, bool) {
	for _, s := range b.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}
