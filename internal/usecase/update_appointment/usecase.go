package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

const operation = "update_appointment"

// UseCase use case для изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	admission       Admission
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	admission Admission,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		admission:       admission,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Повторно проверяются только затронутые строки: у которых сменились услуга, сотрудник
// или время начала, а при смене даты - все активные строки. Собственные прежние окна
// затронутых строк из проверки исключаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: appointment id=%d, lines=%d", req.AppointmentID, len(req.Lines))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Читаем запись с блокировкой
		appointment, err := uc.load(txCtx, req.AppointmentID)
		if err != nil {
			return err
		}

		// 3. Финальные и отменённые записи не редактируются
		if err := appointment.EnsureMutable(); err != nil {
			uc.logger.Warn("UpdateAppointment: %v", err)
			return err
		}

		// 4. Шапка
		dateChanged := false
		if req.Date != nil && !domain.SameDate(*req.Date, appointment.ServiceDate) {
			if err := validateDate(*req.Date, now); err != nil {
				uc.logger.Warn("UpdateAppointment: %v", err)
				return err
			}
			appointment.ServiceDate = domain.DateOnly(*req.Date)
			dateChanged = true
		}
		if req.EntryTime != nil {
			appointment.EntryTime = *req.EntryTime
		}
		if req.Motif != nil {
			appointment.Motif = strings.TrimSpace(*req.Motif)
		}

		// 5. Строки
		check := admission.Check{
			Operation: operation,
			Date:      appointment.ServiceDate,
		}
		patched := make(map[int64]struct{}, len(req.Lines))
		changed := make([]*domain.ServiceLine, 0, len(req.Lines))

		for _, patch := range req.Lines {
			idx, prev := lineIndex(appointment, patch.ID)
			if prev == nil {
				uc.logger.Warn("UpdateAppointment: line id=%d not found in appointment id=%d", patch.ID, appointment.ID)
				return fmt.Errorf("%w: line id=%d", domain.ErrServiceLineNotFound, patch.ID)
			}
			if !prev.IsActive() {
				return fmt.Errorf("%w: line id=%d is cancelled", domain.ErrValidation, patch.ID)
			}

			lr := admission.LineRequest{
				ServiceID:    ptr.Deref(patch.ServiceID, prev.ServiceID),
				EmployeeID:   ptr.Deref(patch.EmployeeID, prev.EmployeeID),
				Quantity:     ptr.Deref(patch.Quantity, prev.Quantity),
				Observations: prev.Observations,
			}
			if patch.Observations != nil {
				lr.Observations = patch.Observations
			}
			start := ptr.Deref(patch.StartTime, prev.StartTime)

			next, err := uc.admission.ResolveLine(txCtx, idx, lr, start, prev)
			if err != nil {
				uc.logger.Warn("UpdateAppointment: line id=%d rejected: %v", patch.ID, err)
				return err
			}
			next.ID = prev.ID
			next.AppointmentID = appointment.ID
			next.CreatedAt = prev.CreatedAt

			affected := dateChanged ||
				next.ServiceID != prev.ServiceID ||
				next.EmployeeID != prev.EmployeeID ||
				!next.StartTime.Equal(prev.StartTime)
			if affected {
				check.Lines = append(check.Lines, next)
				check.Indexes = append(check.Indexes, idx)
				check.ExcludeLineIDs = append(check.ExcludeLineIDs, next.ID)
			}

			appointment.Lines[idx] = next
			patched[next.ID] = struct{}{}
			changed = append(changed, next)
		}

		// Смена даты переносит все активные строки
		if dateChanged {
			for idx, line := range appointment.Lines {
				if _, ok := patched[line.ID]; ok || !line.IsActive() {
					continue
				}
				check.Lines = append(check.Lines, line)
				check.Indexes = append(check.Indexes, idx)
				check.ExcludeLineIDs = append(check.ExcludeLineIDs, line.ID)
			}
		}

		// 6. Проверяем смены и пересечения затронутых строк
		if err := uc.admission.Verify(txCtx, check); err != nil {
			return err
		}

		// 7. Итог
		appointment.RecomputeTotal()
		if err := domain.ValidateTotal(appointment.TotalValue); err != nil {
			uc.logger.Warn("UpdateAppointment: %v", err)
			return err
		}

		// 8. Сохраняем
		for _, line := range changed {
			if err := uc.appointmentRepo.UpdateLine(txCtx, line); err != nil {
				if errors.Is(err, appointmentRepo.ErrLineNotFound) {
					return fmt.Errorf("%w: line id=%d", domain.ErrServiceLineNotFound, line.ID)
				}
				uc.logger.Error("UpdateAppointment: failed to update line id=%d: %v", line.ID, err)
				return fmt.Errorf("%w: failed to update line: %w", ErrInternal, err)
			}
		}

		if err := uc.appointmentRepo.UpdateHeader(txCtx, appointment); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result, err = uc.load(txCtx, appointment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d, total=%s",
		result.ID, result.TotalValue.StringFixed(2))

	return models.FromDomainAppointment(result), nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", id)
			return nil, domain.ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

// lineIndex возвращает позицию строки в записи
func lineIndex(a *domain.Appointment, lineID int64) (int, *domain.ServiceLine) {
	for i, l := range a.Lines {
		if l.ID == lineID {
			return i, l
		}
	}
	return -1, nil
}
