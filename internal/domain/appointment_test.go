package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func TestOverlaps_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		s1, e1 string
		s2, e2 string
		want   bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"back to back after", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back before", "10:00", "11:00", "09:00", "10:00", false},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"disjoint", "09:00", "10:00", "13:00", "14:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(ts(tt.s1), ts(tt.e1), ts(tt.s2), ts(tt.e2)))
			assert.Equal(t, tt.want, Overlaps(ts(tt.s2), ts(tt.e2), ts(tt.s1), ts(tt.e1)))
		})
	}
}

func TestAppointment_TotalSkipsCancelledLines(t *testing.T) {
	a := &Appointment{
		Lines: []*ServiceLine{
			{ID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("15.50"), Status: LineStatusActive},
			{ID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("40.00"), Status: LineStatusCancelled},
			{ID: 3, Quantity: 3, UnitPrice: decimal.RequireFromString("0.10"), Status: LineStatusActive},
		},
	}

	a.RecomputeTotal()

	assert.True(t, decimal.RequireFromString("31.30").Equal(a.TotalValue), a.TotalValue.String())
	assert.Len(t, a.ActiveLines(), 2)
}

func TestValidateTotal(t *testing.T) {
	assert.ErrorIs(t, ValidateTotal(decimal.Zero), ErrValidation)
	assert.ErrorIs(t, ValidateTotal(decimal.RequireFromString("10000000000.00")), ErrValidation)
	assert.NoError(t, ValidateTotal(MaxTotalValue))
}

func TestAppointment_EnsureMutable(t *testing.T) {
	a := &Appointment{ID: 7, Status: StatusPaid}
	assert.ErrorIs(t, a.EnsureMutable(), ErrImmutableAppointment)

	a.Status = StatusConfirmed
	assert.NoError(t, a.EnsureMutable())
}

func TestShift_Covers(t *testing.T) {
	s := &Shift{EntryTime: ts("09:00"), ExitTime: ts("17:00")}

	assert.True(t, s.Covers(ts("09:00"), ts("17:00")))
	assert.True(t, s.Covers(ts("10:00"), ts("11:00")))
	assert.False(t, s.Covers(ts("08:30"), ts("09:30")))
	assert.False(t, s.Covers(ts("16:30"), ts("17:30")))
}

func TestResourceKey_ResourceOf(t *testing.T) {
	assert.Equal(t, int64(10), ResourceService.ResourceOf(10, 20))
	assert.Equal(t, int64(20), ResourceEmployee.ResourceOf(10, 20))

	_, err := ParseResourceKey("room")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsPastDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 9, 20, 23, 30, 0, 0, loc)

	assert.False(t, IsPastDate(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsPastDate(time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsPastDate(time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), now))
}
