package repository

import (
	"sync"

	"github.com/noah-isme/sma-exam-planner/internal/models"
)

// BoardRepository holds the planner state in memory. Mutations are
// serialized and applied to a copy that replaces the live board only when
// the update succeeds, so a failed update never leaves partial changes.
type BoardRepository struct {
	mu       sync.RWMutex
	board    *models.Board
	revision int64
}

// NewBoardRepository seeds the repository with the given board.
func NewBoardRepository(seed *models.Board) *BoardRepository {
	if seed == nil {
		seed = models.NewBoard()
	}
	return &BoardRepository{board: seed.Clone()}
}

// View runs fn against the live board under a read lock. fn must not mutate
// or retain the board.
func (r *BoardRepository) View(fn func(b *models.Board)) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.board)
	return r.revision
}

// Update applies fn to a copy of the board. The copy is committed, and the
// revision bumped, only when fn reports a change and no error.
func (r *BoardRepository) Update(fn func(b *models.Board) (bool, error)) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft := r.board.Clone()
	changed, err := fn(draft)
	if err != nil {
		return r.revision, false, err
	}
	if !changed {
		return r.revision, false, nil
	}
	r.board = draft
	r.revision++
	return r.revision, true, nil
}

// Revision returns the number of committed updates.
func (r *BoardRepository) Revision() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}
