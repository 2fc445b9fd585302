package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей и операций, не занимающих новое время:
// смена статуса, отмена строки, удаление
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает запись вместе со строками
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// List возвращает страницу записей, упорядоченных по (дата, время входа)
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	// отсутствующие page/pageSize берутся по умолчанию, явный 0 - ошибка
	if req.Page != nil && *req.Page < domain.MinPage {
		return nil, fmt.Errorf("%w: page must be >= %d", domain.ErrValidation, domain.MinPage)
	}
	if req.PageSize != nil && (*req.PageSize < domain.MinPageSize || *req.PageSize > domain.MaxPageSize) {
		return nil, fmt.Errorf("%w: pageSize must be between %d and %d",
			domain.ErrValidation, domain.MinPageSize, domain.MaxPageSize)
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", domain.ErrValidation)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	page, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d appointments (page=%d)", len(page.Appointments), page.Total, page.Page)
	return models.FromDomainPage(page), nil
}

// ChangeStatus переводит запись в новый статус по таблице переходов.
// Reason, если передан, заменяет motif записи.
func (s *Service) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error) {
	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if err := validateMotif(trimmed); err != nil {
			return nil, err
		}
		reason = &trimmed
	}

	var result *domain.Appointment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.load(ctx, "ChangeStatus", id)
		if err != nil {
			return err
		}

		from := appointment.Status
		if err := domain.Transition(from, to); err != nil {
			s.logger.Warn("ChangeStatus: appointment id=%d: %v", id, err)
			return err
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, id, to, reason); err != nil {
			s.logger.Error("ChangeStatus: failed to update appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: ChangeStatus - update status: %w", ErrInternal, err)
		}

		appointment.Status = to
		if reason != nil {
			appointment.Motif = *reason
		}
		result = appointment

		s.metrics.ObserveTransition(string(from), string(to))
		s.logger.Info("ChangeStatus: appointment id=%d %s -> %s", id, from, to)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(result), nil
}

// CancelLine отменяет одну строку, не отменяя запись, и пересчитывает итог.
// Повторная отмена уже отменённой строки ничего не меняет.
func (s *Service) CancelLine(ctx context.Context, appointmentID, lineID int64) (*models.AppointmentResponse, error) {
	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.load(ctx, "CancelLine", appointmentID)
		if err != nil {
			return err
		}

		if err := appointment.EnsureMutable(); err != nil {
			s.logger.Warn("CancelLine: %v", err)
			return err
		}

		line, ok := appointment.FindLine(lineID)
		if !ok {
			s.logger.Warn("CancelLine: line id=%d not found in appointment id=%d", lineID, appointmentID)
			return domain.ErrServiceLineNotFound
		}

		if !line.IsActive() {
			s.logger.Info("CancelLine: line id=%d is already cancelled", lineID)
			result = appointment
			return nil
		}

		if len(appointment.ActiveLines()) == 1 {
			s.logger.Warn("CancelLine: line id=%d is the last active line of appointment id=%d", lineID, appointmentID)
			return fmt.Errorf("%w: cannot cancel the last active line, cancel the appointment instead", domain.ErrValidation)
		}

		if err := s.appointmentRepo.CancelLine(ctx, appointmentID, lineID); err != nil {
			if errors.Is(err, appointmentRepo.ErrLineNotFound) {
				return domain.ErrServiceLineNotFound
			}
			s.logger.Error("CancelLine: failed to cancel line id=%d: %v", lineID, err)
			return fmt.Errorf("%w: CancelLine - cancel line: %w", ErrInternal, err)
		}
		line.Status = domain.LineStatusCancelled

		appointment.RecomputeTotal()
		if err := s.appointmentRepo.UpdateTotal(ctx, appointmentID, appointment.TotalValue); err != nil {
			s.logger.Error("CancelLine: failed to update total of appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: CancelLine - update total: %w", ErrInternal, err)
		}

		// перечитываем, чтобы вернуть cancelled_at из БД
		result, err = s.load(ctx, "CancelLine", appointmentID)
		if err != nil {
			return err
		}

		s.logger.Info("CancelLine: line id=%d cancelled, appointment id=%d total=%s",
			lineID, appointmentID, appointment.TotalValue.StringFixed(2))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(result), nil
}

// Delete физически удаляет запись. Разрешено только для scheduled и cancelled_by_client.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.load(ctx, "Delete", id)
		if err != nil {
			return err
		}

		if !appointment.Status.IsDeletable() {
			s.logger.Warn("Delete: appointment id=%d has status %s", id, appointment.Status)
			return fmt.Errorf("%w: appointment id=%d is %s", domain.ErrNotDeletable, id, appointment.Status)
		}

		if err := s.appointmentRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.ErrAppointmentNotFound
			}
			s.logger.Error("Delete: failed to delete appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("Delete: appointment id=%d deleted", id)
		return nil
	})
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, domain.ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get appointment: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

func validateMotif(motif string) error {
	n := utf8.RuneCountInString(motif)
	if n < domain.MinMotifLength || n > domain.MaxMotifLength {
		return fmt.Errorf("%w: motif must be %d-%d characters",
			domain.ErrValidation, domain.MinMotifLength, domain.MaxMotifLength)
	}
	return nil
}
