package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("assign: %w", Clone(ErrSubjectScheduled, "subject mat101 already scheduled"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrSubjectScheduled.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "subject mat101 already scheduled", appErr.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, "internal server error: boom", appErr.Error())
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrPeriodCapacity, "only 5 periods allowed")
	assert.NotEqual(t, clone.Message, ErrPeriodCapacity.Message)
	assert.Equal(t, "maximum number of periods reached", ErrPeriodCapacity.Message)
	assert.Equal(t, ErrPeriodCapacity.Code, clone.Code)
}

func TestWrapUnwraps(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := Wrap(cause, ErrMalformedSnapshot.Code, ErrMalformedSnapshot.Status, "snapshot could not be parsed")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestIsMatchesByCode(t *testing.T) {
	clone := Clone(ErrLastPeriod, "period 1 is the only one left")
	assert.ErrorIs(t, fmt.Errorf("remove: %w", clone), ErrLastPeriod)
	assert.NotErrorIs(t, clone, ErrPeriodCapacity)

	var nilErr *Error
	assert.False(t, nilErr.Is(ErrLastPeriod))
	assert.False(t, clone.Is(stderrors.New("LAST_PERIOD")))
}
