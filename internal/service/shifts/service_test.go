package shifts

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fakestore"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var day = time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

func newService() *Service {
	store := fakestore.New()
	store.AddEmployee(10, "Ana Ruiz", true, true)
	store.AddEmployee(11, "Former", false, true)
	store.AddEmployee(12, "Client", true, false)
	return NewService(store.Shifts(), store.Catalog(), logger.NewWithWriter(io.Discard, "error"))
}

func TestCreate(t *testing.T) {
	svc := newService()

	got, err := svc.Create(context.Background(), &CreateRequest{
		EmployeeID: 10, ShiftDate: day, EntryTime: "08:00", ExitTime: "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-20", got.ShiftDate)
	assert.Equal(t, "08:00:00", got.EntryTime)
	assert.Equal(t, "17:00:00", got.ExitTime)

	_, err = svc.Create(context.Background(), &CreateRequest{
		EmployeeID: 10, ShiftDate: day, EntryTime: "12:00", ExitTime: "20:00",
	})
	assert.ErrorIs(t, err, ErrDuplicateShift)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{name: "exit before entry", req: CreateRequest{EmployeeID: 10, ShiftDate: day, EntryTime: "17:00", ExitTime: "08:00"}, wantErr: domain.ErrValidation},
		{name: "empty window", req: CreateRequest{EmployeeID: 10, ShiftDate: day, EntryTime: "08:00", ExitTime: "08:00"}, wantErr: domain.ErrValidation},
		{name: "bad time", req: CreateRequest{EmployeeID: 10, ShiftDate: day, EntryTime: "8am", ExitTime: "17:00"}, wantErr: domain.ErrValidation},
		{name: "unknown employee", req: CreateRequest{EmployeeID: 99, ShiftDate: day, EntryTime: "08:00", ExitTime: "17:00"}, wantErr: domain.ErrReferenceInvalid},
		{name: "inactive employee", req: CreateRequest{EmployeeID: 11, ShiftDate: day, EntryTime: "08:00", ExitTime: "17:00"}, wantErr: domain.ErrReferenceInvalid},
		{name: "not staff", req: CreateRequest{EmployeeID: 12, ShiftDate: day, EntryTime: "08:00", ExitTime: "17:00"}, wantErr: domain.ErrReferenceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
