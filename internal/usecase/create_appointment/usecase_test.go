package create_appointment

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

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type createdCounter struct {
	lines []int
}

func (c *createdCounter) ObserveAppointmentCreated(lines int) {
	c.lines = append(c.lines, lines)
}

type noConflictMetrics struct{}

func (noConflictMetrics) ObserveConflict(operation, reason string) {}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func newUseCase(t *testing.T, key domain.ResourceKey) (*UseCase, *fakestore.Store, *createdCounter) {
	t.Helper()
	store := fakestore.New()
	store.AddService(1, "Coloring", 60, "40.00", true)
	store.AddService(2, "Haircut", 30, "15.65", true)
	store.AddService(3, "Retired", 30, "10.00", false)
	store.AddEmployee(10, "Ana Ruiz", true, true)
	store.AddEmployee(11, "Luis Mora", true, true)
	store.AddShift(10, day, "08:00", "18:00")
	store.AddShift(11, day, "08:00", "18:00")

	log := logger.NewWithWriter(io.Discard, "error")
	checker := conflicts.NewChecker(store.Appointments(), key)
	adm := admission.NewService(store.Catalog(), store.Shifts(), checker, noConflictMetrics{}, true, log)

	counter := &createdCounter{}
	uc := NewUseCase(store.Appointments(), adm, store, counter, time.UTC, log)
	uc.timeProvider = fixedClock{now: time.Date(2025, 9, 19, 15, 0, 0, 0, time.UTC)}
	return uc, store, counter
}

func request(entry string, lines ...admission.LineRequest) *Request {
	return &Request{
		ClientID:  1,
		Date:      day,
		EntryTime: ts(entry),
		Motif:     "weekend visit",
		Lines:     lines,
	}
}

func TestExecute_ComputesTotalAndSnapshots(t *testing.T) {
	uc, store, counter := newUseCase(t, domain.ResourceService)

	got, err := uc.Execute(context.Background(), request("09:00",
		admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 2},
		admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1, StartTime: ptr.Ptr(ts("09:00"))},
	))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), got.Status)
	assert.True(t, decimal.RequireFromString("71.30").Equal(got.TotalValue))
	require.Len(t, got.Lines, 2)
	assert.Equal(t, []int{2}, counter.lines)

	stored := store.Stored(got.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.ComputeTotal().Equal(stored.TotalValue))
	assert.Equal(t, 1, store.Commits)
}

// Scenario A: 09:00-10:00 accepted, 09:30-10:30 rejected, 10:00-11:00 accepted
func TestExecute_AdjacentAcceptedOverlapRejected(t *testing.T) {
	uc, store, _ := newUseCase(t, domain.ResourceService)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	require.NoError(t, err)

	// another employee, same service: still the same contended resource
	_, err = uc.Execute(ctx, request("09:30", admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1}))
	require.ErrorIs(t, err, domain.ErrScheduleConflict)

	var conflictErr *domain.ScheduleConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Lines, 1)
	assert.Equal(t, 0, conflictErr.Lines[0].Index)
	assert.Equal(t, ts("09:30"), conflictErr.Lines[0].Start)
	require.Len(t, conflictErr.Lines[0].Conflicts, 1)
	assert.Equal(t, ts("09:00"), conflictErr.Lines[0].Conflicts[0].Start)

	_, err = uc.Execute(ctx, request("10:00", admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, 2, store.AppointmentCount())
}

func TestExecute_EmployeeKeyedPolicy(t *testing.T) {
	uc, _, _ := newUseCase(t, domain.ResourceEmployee)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	require.NoError(t, err)

	// same service, different employee: free under the employee key
	_, err = uc.Execute(ctx, request("09:30", admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1}))
	require.NoError(t, err)

	// same employee, different service: busy
	_, err = uc.Execute(ctx, request("09:30", admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
}

// Scenario B: one line references an inactive service, nothing is persisted
func TestExecute_InactiveServiceRejectsWholeRequest(t *testing.T) {
	uc, store, counter := newUseCase(t, domain.ResourceService)

	_, err := uc.Execute(context.Background(), request("09:00",
		admission.LineRequest{ServiceID: 2, EmployeeID: 10, Quantity: 1},
		admission.LineRequest{ServiceID: 3, EmployeeID: 10, Quantity: 1},
	))
	require.ErrorIs(t, err, domain.ErrReferenceInvalid)

	assert.Equal(t, 0, store.AppointmentCount())
	assert.Equal(t, 0, store.LineCount())
	assert.Empty(t, counter.lines)
}

func TestExecute_ConflictOnLastLineIsAtomic(t *testing.T) {
	uc, store, _ := newUseCase(t, domain.ResourceService)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request("12:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	require.NoError(t, err)
	before := store.LineCount()

	_, err = uc.Execute(ctx, request("10:00",
		admission.LineRequest{ServiceID: 2, EmployeeID: 11, Quantity: 1},
		admission.LineRequest{ServiceID: 2, EmployeeID: 11, Quantity: 1},
		admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1, StartTime: ptr.Ptr(ts("12:30"))},
	))
	require.ErrorIs(t, err, domain.ErrScheduleConflict)

	var conflictErr *domain.ScheduleConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Lines, 1)
	assert.Equal(t, 2, conflictErr.Lines[0].Index)

	assert.Equal(t, 1, store.AppointmentCount())
	assert.Equal(t, before, store.LineCount())
}

func TestExecute_LinesInsideRequestCollide(t *testing.T) {
	uc, store, _ := newUseCase(t, domain.ResourceService)

	_, err := uc.Execute(context.Background(), request("09:00",
		admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1},
		admission.LineRequest{ServiceID: 1, EmployeeID: 11, Quantity: 1, StartTime: ptr.Ptr(ts("09:15"))},
	))
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	assert.Equal(t, 0, store.AppointmentCount())
}

func TestExecute_PersistenceFailureRollsBack(t *testing.T) {
	uc, store, _ := newUseCase(t, domain.ResourceService)
	store.Fail = func(op string) error {
		if op == "Create" {
			return errors.New("connection refused")
		}
		return nil
	}

	_, err := uc.Execute(context.Background(), request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, store.Rollbacks)
	assert.Equal(t, 0, store.AppointmentCount())
}

func TestExecute_DatePolicy(t *testing.T) {
	uc, _, _ := newUseCase(t, domain.ResourceService)
	ctx := context.Background()

	past := request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1})
	past.Date = day.AddDate(0, 0, -2)
	_, err := uc.Execute(ctx, past)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// today in the business time zone is allowed
	uc.timeProvider = fixedClock{now: time.Date(2025, 9, 20, 7, 0, 0, 0, time.UTC)}
	_, err = uc.Execute(ctx, request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	assert.NoError(t, err)
}

func TestExecute_TodayComputedInBusinessZone(t *testing.T) {
	uc, _, _ := newUseCase(t, domain.ResourceService)
	bogota := time.FixedZone("COT", -5*60*60)
	uc.location = bogota
	// 02:00 UTC on the 21st is still the 20th in Bogota
	uc.timeProvider = fixedClock{now: time.Date(2025, 9, 21, 2, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1}))
	assert.NoError(t, err)
}

func TestExecute_ValidatesHeader(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "empty motif", mutate: func(r *Request) { r.Motif = "   " }},
		{name: "long motif", mutate: func(r *Request) { r.Motif = string(make([]byte, domain.MaxMotifLength+1)) }},
		{name: "no lines", mutate: func(r *Request) { r.Lines = nil }},
		{name: "no entry time", mutate: func(r *Request) { r.EntryTime = "" }},
		{name: "no date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, _ := newUseCase(t, domain.ResourceService)
			req := request("09:00", admission.LineRequest{ServiceID: 1, EmployeeID: 10, Quantity: 1})
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, 0, store.AppointmentCount())
		})
	}
}
