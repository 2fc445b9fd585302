package change_status

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

// stubService держит одну запись в статусе paid
type stubService struct{}

func (stubService) ChangeStatus(_ context.Context, id int64, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error) {
	if id != 1 {
		return nil, domain.ErrAppointmentNotFound
	}
	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if err := domain.Transition(domain.StatusPaid, to); err != nil {
		return nil, err
	}
	return &models.AppointmentResponse{ID: 1, Status: string(to)}, nil
}

func newRouter() *mux.Router {
	h := NewHandler(stubService{}, logger.NewWithWriter(io.Discard, "error"))
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/status", h.Handle).Methods(http.MethodPatch)
	return r
}

func TestHandle_IllegalTransitionReportsPair(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/appointments/1/status",
		strings.NewReader(`{"status":"scheduled"}`)))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "paid", body.From)
	assert.Equal(t, "scheduled", body.To)
}

func TestHandle_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "unknown status", path: "/appointments/1/status", body: `{"status":"archived"}`, status: http.StatusBadRequest},
		{name: "bad body", path: "/appointments/1/status", body: `status=paid`, status: http.StatusBadRequest},
		{name: "bad id", path: "/appointments/one/status", body: `{"status":"paid"}`, status: http.StatusBadRequest},
		{name: "missing", path: "/appointments/2/status", body: `{"status":"paid"}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
