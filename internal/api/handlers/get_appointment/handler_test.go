package get_appointment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	byID map[int64]*models.AppointmentResponse
}

func (s stubService) GetByID(_ context.Context, id int64) (*models.AppointmentResponse, error) {
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAppointmentNotFound
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{byID: map[int64]*models.AppointmentResponse{1: {ID: 1}}},
		logger.NewWithWriter(io.Discard, "error"))
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", h.Handle).Methods(http.MethodGet)

	tests := []struct {
		path   string
		status int
	}{
		{path: "/appointments/1", status: http.StatusOK},
		{path: "/appointments/2", status: http.StatusNotFound},
		{path: "/appointments/abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
