package delete_appointment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService map[int64]error

func (s stubService) Delete(_ context.Context, id int64) error {
	if err, ok := s[id]; ok {
		return err
	}
	return domain.ErrAppointmentNotFound
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubService{1: nil, 2: domain.ErrNotDeletable}, logger.NewWithWriter(io.Discard, "error"))
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", h.Handle).Methods(http.MethodDelete)

	tests := []struct {
		path   string
		status int
	}{
		{path: "/appointments/1", status: http.StatusNoContent},
		{path: "/appointments/2", status: http.StatusConflict},
		{path: "/appointments/3", status: http.StatusNotFound},
		{path: "/appointments/x", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
