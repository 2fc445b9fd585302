package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Table(t *testing.T) {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusScheduled:   {StatusConfirmed, StatusRescheduled, StatusCancelledByClient},
		StatusConfirmed:   {StatusInProgress, StatusRescheduled, StatusCancelledByClient},
		StatusRescheduled: {StatusConfirmed, StatusCancelledByClient},
		StatusInProgress:  {StatusFinished, StatusCancelledByClient},
		StatusFinished:    {StatusPaid},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			err := Transition(from, to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}

			require.Error(t, err, "%s -> %s", from, to)
			assert.ErrorIs(t, err, ErrIllegalTransition)

			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, from, te.From)
			assert.Equal(t, to, te.To)
		}
	}
}

func TestTransition_FinishedToScheduledIsIllegal(t *testing.T) {
	err := Transition(StatusFinished, StatusScheduled)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Contains(t, err.Error(), "finished -> scheduled")
}

func TestTransition_UnknownTarget(t *testing.T) {
	err := Transition(StatusScheduled, AppointmentStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatus_Predicates(t *testing.T) {
	immutable := []AppointmentStatus{StatusFinished, StatusPaid, StatusCancelledByClient, StatusNoShow}
	for _, s := range AllStatuses {
		assert.Equal(t, contains(immutable, s), s.IsImmutable(), "immutable %s", s)
	}

	assert.True(t, StatusScheduled.IsDeletable())
	assert.True(t, StatusCancelledByClient.IsDeletable())
	assert.False(t, StatusConfirmed.IsDeletable())
	assert.False(t, StatusPaid.IsDeletable())

	assert.False(t, StatusCancelledByClient.OccupiesResources())
	assert.False(t, StatusNoShow.OccupiesResources())
	assert.True(t, StatusFinished.OccupiesResources())

	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusFinished.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("InProgress")
	assert.ErrorIs(t, err, ErrValidation)
}

func contains(list []AppointmentStatus, s AppointmentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
