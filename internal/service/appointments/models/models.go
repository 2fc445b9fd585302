package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Request модели

// ListRequest запрос на получение списка записей
type ListRequest struct {
	ClientID   *int64
	EmployeeID *int64
	ServiceID  *int64
	Status     *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       *int
	PageSize   *int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		ClientID:   r.ClientID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		Page:       ptr.Deref(r.Page, domain.MinPage),
		PageSize:   ptr.Deref(r.PageSize, domain.DefaultPageSize),
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ChangeStatusRequest запрос на смену статуса
type ChangeStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"` // заменяет motif записи, например причина отмены
}

// Response модели

// LineResponse строка услуги в ответе
type LineResponse struct {
	ID              int64           `json:"id"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	EmployeeID      int64           `json:"employeeId"`
	Quantity        int             `json:"quantity"`
	StartTime       string          `json:"startTime"` // "09:00:00"
	EndTime         string          `json:"endTime"`
	DurationMinutes int             `json:"durationMinutes"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Observations    *string         `json:"observations,omitempty"`
	Status          string          `json:"status"`
	CancelledAt     *string         `json:"cancelledAt,omitempty"` // ISO 8601
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId"`
	ServiceDate string          `json:"serviceDate"` // "2025-09-20"
	EntryTime   string          `json:"entryTime"`
	Motif       string          `json:"motif"`
	Status      string          `json:"status"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Lines       []LineResponse  `json:"lines"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AppointmentListResponse страница записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:          a.ID,
		ClientID:    a.ClientID,
		ServiceDate: a.ServiceDate.Format(domain.DateFormat),
		EntryTime:   a.EntryTime.String(),
		Motif:       a.Motif,
		Status:      string(a.Status),
		TotalValue:  a.TotalValue,
		Lines:       make([]LineResponse, 0, len(a.Lines)),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	for _, l := range a.Lines {
		resp.Lines = append(resp.Lines, fromDomainLine(l))
	}

	return resp
}

// FromDomainPage конвертирует страницу domain моделей в DTO
func FromDomainPage(p *domain.AppointmentPage) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: []AppointmentResponse{},
	}
	if p == nil {
		return resp
	}

	resp.Total = p.Total
	resp.Page = p.Page
	resp.PageSize = p.PageSize
	for _, a := range p.Appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

func fromDomainLine(l *domain.ServiceLine) LineResponse {
	lr := LineResponse{
		ID:              l.ID,
		ServiceID:       l.ServiceID,
		ServiceName:     l.ServiceName,
		EmployeeID:      l.EmployeeID,
		Quantity:        l.Quantity,
		StartTime:       l.StartTime.String(),
		EndTime:         l.EndTime.String(),
		DurationMinutes: l.DurationMinutes,
		UnitPrice:       l.UnitPrice,
		Subtotal:        l.Subtotal(),
		Observations:    l.Observations,
		Status:          string(l.Status),
	}

	if l.CancelledAt != nil {
		cancelled := l.CancelledAt.Format(time.RFC3339)
		lr.CancelledAt = &cancelled
	}

	return lr
}
