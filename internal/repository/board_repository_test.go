package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-exam-planner/internal/models"
)

func seededBoard() *models.Board {
	b := models.NewBoard()
	b.Periods = []models.Period{{ID: 1, Kind: models.PeriodKindFinal, AcademicYear: "2025", HalfYear: 1, StartDate: "2025-03-03", EndDate: "2025-03-07"}}
	b.Slots[1] = []models.TimeSlot{{Start: "08:00", End: "10:00"}}
	b.ActivePeriodID = 1
	return b
}

func TestBoardRepositoryUpdateCommits(t *testing.T) {
	repo := NewBoardRepository(seededBoard())

	rev, changed, err := repo.Update(func(b *models.Board) (bool, error) {
		b.Subjects = append(b.Subjects, models.Subject{ID: "mat101"})
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int64(1), rev)

	repo.View(func(b *models.Board) {
		assert.Len(t, b.Subjects, 1)
	})
}

func TestBoardRepositoryUpdateRollsBackOnError(t *testing.T) {
	repo := NewBoardRepository(seededBoard())

	_, changed, err := repo.Update(func(b *models.Board) (bool, error) {
		b.Periods = nil
		b.Subjects = append(b.Subjects, models.Subject{ID: "x"})
		return true, errors.New("rejected")
	})
	require.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, int64(0), repo.Revision())

	repo.View(func(b *models.Board) {
		assert.Len(t, b.Periods, 1)
		assert.Empty(t, b.Subjects)
	})
}

func TestBoardRepositoryUpdateNoChangeKeepsRevision(t *testing.T) {
	repo := NewBoardRepository(seededBoard())
	rev, changed, err := repo.Update(func(b *models.Board) (bool, error) {
		b.ActivePeriodID = 42
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, int64(0), rev)
	repo.View(func(b *models.Board) {
		assert.Equal(t, 1, b.ActivePeriodID)
	})
}

func TestNewBoardRepositoryCopiesSeed(t *testing.T) {
	seed := seededBoard()
	repo := NewBoardRepository(seed)
	seed.Periods[0].ID = 99
	repo.View(func(b *models.Board) {
		assert.Equal(t, 1, b.Periods[0].ID)
	})
}
