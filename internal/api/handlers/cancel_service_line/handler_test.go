package cancel_service_line

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct{}

func (stubService) CancelLine(_ context.Context, appointmentID, lineID int64) (*models.AppointmentResponse, error) {
	switch {
	case appointmentID != 1:
		return nil, domain.ErrAppointmentNotFound
	case lineID == 5:
		return &models.AppointmentResponse{ID: 1, TotalValue: decimal.RequireFromString("15.65")}, nil
	case lineID == 6:
		return nil, domain.ErrImmutableAppointment
	default:
		return nil, domain.ErrServiceLineNotFound
	}
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{}, logger.NewWithWriter(io.Discard, "error"))
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/lines/{lineId}/cancel", h.Handle).Methods(http.MethodPatch)

	tests := []struct {
		path   string
		status int
	}{
		{path: "/appointments/1/lines/5/cancel", status: http.StatusOK},
		{path: "/appointments/1/lines/6/cancel", status: http.StatusConflict},
		{path: "/appointments/1/lines/7/cancel", status: http.StatusNotFound},
		{path: "/appointments/2/lines/5/cancel", status: http.StatusNotFound},
		{path: "/appointments/1/lines/x/cancel", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
