package add_service_line

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fakestore"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var day = time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

type noMetrics struct{}

func (noMetrics) ObserveConflict(operation, reason string) {}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func newUseCase(t *testing.T) (*UseCase, *fakestore.Store, *domain.Appointment) {
	t.Helper()
	store := fakestore.New()
	store.AddService(1, "Coloring", 60, "40.00", true)
	store.AddService(2, "Haircut", 30, "15.65", true)
	store.AddService(3, "Retired", 30, "10.00", false)
	store.AddEmployee(10, "Ana Ruiz", true, true)
	store.AddEmployee(11, "Luis Mora", true, true)
	store.AddShift(10, day, "08:00", "18:00")
	store.AddShift(11, day, "08:00", "18:00")

	a, err := store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID:    1,
		ServiceDate: day,
		EntryTime:   ts("09:00"),
		Motif:       "visit",
		Status:      domain.StatusConfirmed,
		TotalValue:  decimal.RequireFromString("40.00"),
		Lines: []*domain.ServiceLine{{
			ServiceID: 1, EmployeeID: 10, Quantity: 1,
			StartTime: ts("09:00"), EndTime: ts("10:00"),
			UnitPrice: decimal.RequireFromString("40.00"), DurationMinutes: 60,
		}},
	})
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "error")
	checker := conflicts.NewChecker(store.Appointments(), domain.ResourceService)
	adm := admission.NewService(store.Catalog(), store.Shifts(), checker, noMetrics{}, true, log)
	return NewUseCase(store.Appointments(), adm, store, log), store, a
}

func TestExecute_AppendsAfterLastLine(t *testing.T) {
	uc, store, a := newUseCase(t)

	got, err := uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Line:          admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "10:00:00", got.Lines[1].StartTime)
	assert.Equal(t, "10:30:00", got.Lines[1].EndTime)
	assert.True(t, decimal.RequireFromString("71.30").Equal(got.TotalValue))

	stored := store.Stored(a.ID)
	assert.True(t, stored.ComputeTotal().Equal(stored.TotalValue))
}

func TestExecute_ExplicitStartConflicts(t *testing.T) {
	uc, store, a := newUseCase(t)

	// same service as the existing line, overlapping window
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Line:          admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1, StartTime: ptr.Ptr(ts("09:30"))},
	})
	require.ErrorIs(t, err, domain.ErrScheduleConflict)
	assert.Len(t, store.Stored(a.ID).Lines, 1)
}

func TestExecute_InactiveService(t *testing.T) {
	uc, store, a := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Line:          admission.LineRequest{ServiceID: 3, EmployeeID: 10, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrReferenceInvalid)
	assert.Len(t, store.Stored(a.ID).Lines, 1)
}

func TestExecute_ImmutableAppointment(t *testing.T) {
	uc, store, a := newUseCase(t)
	store.SetStatus(a.ID, domain.StatusPaid)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Line:          admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrImmutableAppointment)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 404,
		Line:          admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestExecute_TotalFailureRollsBackInsert(t *testing.T) {
	uc, store, a := newUseCase(t)
	store.Fail = func(op string) error {
		if op == "UpdateTotal" {
			return errors.New("disk full")
		}
		return nil
	}

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: a.ID,
		Line:          admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrInternal)
	assert.Len(t, store.Stored(a.ID).Lines, 1)
	assert.Equal(t, 1, store.Rollbacks)
}
