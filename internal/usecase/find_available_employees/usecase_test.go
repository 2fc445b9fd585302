package find_available_employees

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fakestore"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var day = time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func newUseCase(t *testing.T, key domain.ResourceKey) (*UseCase, *fakestore.Store) {
	t.Helper()
	store := fakestore.New()
	store.AddEmployee(10, "Ana Ruiz", true, true)
	store.AddEmployee(11, "Luis Mora", true, true)
	store.AddEmployee(12, "Sara Gil", true, true)
	store.AddEmployee(13, "Former", false, true)
	store.AddEmployee(14, "Eva Paz", true, true)
	store.AddShift(10, day, "08:00", "17:00")
	store.AddShift(11, day, "08:00", "17:00")
	store.AddShift(12, day, "12:00", "20:00") // starts too late
	store.AddShift(13, day, "08:00", "17:00") // inactive
	store.AddShift(14, day.AddDate(0, 0, 1), "08:00", "17:00")

	// employee 11 is busy 09:30-10:00
	_, err := store.Appointments().Create(context.Background(), &domain.Appointment{
		ClientID:    1,
		ServiceDate: day,
		EntryTime:   ts("09:30"),
		Motif:       "visit",
		Status:      domain.StatusConfirmed,
		TotalValue:  decimal.RequireFromString("10"),
		Lines: []*domain.ServiceLine{{
			ServiceID: 1, EmployeeID: 11, Quantity: 1,
			StartTime: ts("09:30"), EndTime: ts("10:00"),
			UnitPrice: decimal.RequireFromString("10"),
		}},
	})
	require.NoError(t, err)

	checker := conflicts.NewChecker(store.Appointments(), key)
	uc := NewUseCase(store.Shifts(), store.Catalog(), checker.WithKey(domain.ResourceEmployee), store,
		logger.NewWithWriter(io.Discard, "error"))
	return uc, store
}

func ids(resp *Response) []int64 {
	result := make([]int64, 0, len(resp.Employees))
	for _, e := range resp.Employees {
		result = append(result, e.ID)
	}
	return result
}

func TestExecute_FiltersByShiftActivityAndOccupancy(t *testing.T) {
	// the appointment policy key must not leak into this query
	uc, _ := newUseCase(t, domain.ResourceService)

	got, err := uc.Execute(context.Background(), &Request{Date: day, StartTime: ts("09:00"), EndTime: ts("10:00")})
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids(got))
	assert.Equal(t, "08:00:00", got.Employees[0].ShiftEntry)

	got, err = uc.Execute(context.Background(), &Request{Date: day, StartTime: ts("10:00"), EndTime: ts("11:00")})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, ids(got))

	got, err = uc.Execute(context.Background(), &Request{Date: day, StartTime: ts("13:00"), EndTime: ts("17:00")})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, ids(got))
}

func TestExecute_ReleasedAppointmentsFreeEmployee(t *testing.T) {
	uc, store := newUseCase(t, domain.ResourceEmployee)
	store.SetStatus(1, domain.StatusCancelledByClient)

	got, err := uc.Execute(context.Background(), &Request{Date: day, StartTime: ts("09:00"), EndTime: ts("10:00")})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, ids(got))
}

func TestExecute_NoShifts(t *testing.T) {
	uc, _ := newUseCase(t, domain.ResourceEmployee)

	got, err := uc.Execute(context.Background(), &Request{Date: day.AddDate(0, 0, 7), StartTime: ts("09:00"), EndTime: ts("10:00")})
	require.NoError(t, err)
	assert.Empty(t, got.Employees)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc, _ := newUseCase(t, domain.ResourceEmployee)

	_, err := uc.Execute(context.Background(), &Request{Date: day, StartTime: ts("10:00"), EndTime: ts("10:00")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{Date: day, StartTime: "bad", EndTime: ts("10:00")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
