package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestRespondDomainError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: fmt.Errorf("%w: motif is empty", domain.ErrValidation), status: http.StatusBadRequest},
		{name: "reference", err: &domain.ReferenceError{Index: 1, Entity: "service", ID: 3}, status: http.StatusUnprocessableEntity},
		{name: "transition", err: &domain.TransitionError{From: domain.StatusPaid, To: domain.StatusScheduled}, status: http.StatusConflict},
		{name: "immutable", err: domain.ErrImmutableAppointment, status: http.StatusConflict},
		{name: "not deletable", err: domain.ErrNotDeletable, status: http.StatusConflict},
		{name: "appointment not found", err: domain.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "line not found", err: fmt.Errorf("%w: line id=7", domain.ErrServiceLineNotFound), status: http.StatusNotFound},
		{name: "serialization", err: fmt.Errorf("tx: %w", txmanager.ErrSerialization), status: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got := RespondDomainError(rec, tt.err)
			assert.Equal(t, tt.status, got)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRespondDomainError_ConflictBody(t *testing.T) {
	err := &domain.ScheduleConflictError{Lines: []domain.LineConflict{{
		Index:      2,
		ServiceID:  1,
		EmployeeID: 10,
		Start:      types.MustTimeString("09:30"),
		End:        types.MustTimeString("10:30"),
		Reason:     domain.ReasonOverlap,
		Conflicts: []domain.Occupancy{{
			AppointmentID: 5,
			LineID:        9,
			ServiceID:     1,
			EmployeeID:    11,
			Start:         types.MustTimeString("09:00"),
			End:           types.MustTimeString("10:00"),
		}},
	}}}

	rec := httptest.NewRecorder()
	require.Equal(t, http.StatusConflict, RespondDomainError(rec, fmt.Errorf("wrapped: %w", err)))

	var body ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Lines, 1)
	assert.Equal(t, 2, body.Lines[0].Index)
	assert.Equal(t, "overlap", body.Lines[0].Reason)
	assert.Equal(t, "09:30:00", body.Lines[0].StartTime)
	require.Len(t, body.Lines[0].Conflicts, 1)
	assert.Equal(t, int64(5), body.Lines[0].Conflicts[0].AppointmentID)
}

func TestRespondDomainError_InternalHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("pq: password authentication failed"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgInternalError, body.Message)
}
