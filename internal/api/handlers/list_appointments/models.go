package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// ToServiceRequest собирает запрос к сервису из query параметров.
// Пустой параметр означает отсутствие фильтра.
func ToServiceRequest(q url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	var err error
	if req.ClientID, err = optionalID(q, "clientId"); err != nil {
		return nil, err
	}
	if req.EmployeeID, err = optionalID(q, "employeeId"); err != nil {
		return nil, err
	}
	if req.ServiceID, err = optionalID(q, "serviceId"); err != nil {
		return nil, err
	}
	if s := q.Get("status"); s != "" {
		req.Status = ptr.Ptr(s)
	}
	if req.DateFrom, err = optionalDate(q, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = optionalDate(q, "dateTo"); err != nil {
		return nil, err
	}
	if req.Page, err = optionalInt(q, "page"); err != nil {
		return nil, err
	}
	if req.PageSize, err = optionalInt(q, "pageSize"); err != nil {
		return nil, err
	}

	return req, nil
}

func optionalID(q url.Values, key string) (*int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return &id, nil
}

func optionalDate(q url.Values, key string) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &d, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return &n, nil
}
