package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestListConditions_Empty(t *testing.T) {
	query, args, err := psqlbuilder.Select("a.id").
		From(tableAppointments + " a").
		Where(listConditions(domain.AppointmentFilter{})).
		ToSql()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "WHERE (1=1)")
}

func TestListConditions_AllFilters(t *testing.T) {
	status := domain.StatusConfirmed
	from := time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Select("a.id").
		From(tableAppointments + " a").
		Where(listConditions(domain.AppointmentFilter{
			ClientID:   ptr.Ptr(int64(7)),
			EmployeeID: ptr.Ptr(int64(10)),
			ServiceID:  ptr.Ptr(int64(2)),
			Status:     &status,
			DateFrom:   &from,
			DateTo:     &to,
		})).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "a.client_id = $1")
	assert.Contains(t, query, "a.status = $2")
	assert.Contains(t, query, "a.service_date >= $3")
	assert.Contains(t, query, "a.service_date <= $4")
	assert.Contains(t, query, "s.employee_id = $5")
	assert.Contains(t, query, "s.service_id = $6")
	require.Len(t, args, 6)
	assert.Equal(t, int64(7), args[0])
	// время отбрасывается, сравниваются только даты
	assert.Equal(t, domain.DateOnly(from), args[2])
}

func TestWrapExec_ClassifiesConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "foreign key", err: &pq.Error{Code: pqForeignKeyViolation}, kind: ErrForeignKey},
		{name: "check", err: &pq.Error{Code: pqCheckViolation}, kind: ErrCheckViolation},
		{name: "serialization", err: &pq.Error{Code: "40001"}, kind: ErrExecQuery},
		{name: "plain", err: errors.New("connection reset"), kind: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapExec("Create", tt.err)
			assert.ErrorIs(t, got, tt.kind)
			// исходная ошибка драйвера остаётся в цепочке
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
