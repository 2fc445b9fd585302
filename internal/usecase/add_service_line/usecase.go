package add_service_line

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const operation = "add_service_line"

// UseCase use case для добавления строки услуги в существующую запись
type UseCase struct {
	appointmentRepo AppointmentRepository
	admission       Admission
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	admission Admission,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		admission:       admission,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case добавления строки: те же проверки, что при создании,
// затем пересчёт итога записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddServiceLine: appointment id=%d, service=%d, employee=%d",
		req.AppointmentID, req.Line.ServiceID, req.Line.EmployeeID)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", domain.ErrValidation)
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись с блокировкой
		appointment, err := uc.load(txCtx, req.AppointmentID)
		if err != nil {
			return err
		}

		// 2. Финальные и отменённые записи не редактируются
		if err := appointment.EnsureMutable(); err != nil {
			uc.logger.Warn("AddServiceLine: %v", err)
			return err
		}

		// 3. Допуск строки
		lines, err := uc.admission.Admit(txCtx, admission.Request{
			Operation: operation,
			Date:      appointment.ServiceDate,
			EntryTime: defaultStart(appointment),
			Lines:     []admission.LineRequest{req.Line},
		})
		if err != nil {
			return err
		}

		// 4. Итог с новой строкой
		line := lines[0]
		line.AppointmentID = appointment.ID
		appointment.Lines = append(appointment.Lines, line)
		appointment.RecomputeTotal()
		if err := domain.ValidateTotal(appointment.TotalValue); err != nil {
			uc.logger.Warn("AddServiceLine: %v", err)
			return err
		}

		// 5. Сохраняем
		if _, err := uc.appointmentRepo.InsertLine(txCtx, line); err != nil {
			uc.logger.Error("AddServiceLine: failed to insert line: %v", err)
			return fmt.Errorf("%w: failed to insert line: %w", ErrInternal, err)
		}
		if err := uc.appointmentRepo.UpdateTotal(txCtx, appointment.ID, appointment.TotalValue); err != nil {
			uc.logger.Error("AddServiceLine: failed to update total of appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update total: %w", ErrInternal, err)
		}

		result, err = uc.load(txCtx, appointment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddServiceLine: appointment id=%d now has %d lines, total=%s",
		result.ID, len(result.Lines), result.TotalValue.StringFixed(2))

	return models.FromDomainAppointment(result), nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("AddServiceLine: appointment id=%d not found", id)
			return nil, domain.ErrAppointmentNotFound
		}
		uc.logger.Error("AddServiceLine: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

// defaultStart время начала строки без явного StartTime: конец последней активной строки
// или время входа, если активных строк нет
func defaultStart(a *domain.Appointment) types.TimeString {
	start := a.EntryTime
	for _, l := range a.ActiveLines() {
		if l.EndTime.IsAfter(start) {
			start = l.EndTime
		}
	}
	return start
}
