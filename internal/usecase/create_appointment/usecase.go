package create_appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const operation = "create_appointment"

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	admission       Admission
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс салона, в нем определяется "сегодня".
func NewUseCase(
	appointmentRepo AppointmentRepository,
	admission Admission,
	txManager TransactionManager,
	metrics Metrics,
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
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции:
// если хотя бы одна строка отклонена, не сохраняется ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, date=%s, entry=%s, lines=%d",
		req.ClientID, req.Date.Format(domain.DateFormat), req.EntryTime, len(req.Lines))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом по часовому поясу салона
	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Допуск строк и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		lines, err := uc.admission.Admit(txCtx, admission.Request{
			Operation: operation,
			Date:      domain.DateOnly(req.Date),
			EntryTime: req.EntryTime,
			Lines:     req.Lines,
		})
		if err != nil {
			return err
		}

		// 3.1. Итог по снимкам цен
		total := domain.ComputeTotal(lines)
		if err := domain.ValidateTotal(total); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 3.2. Сохраняем шапку и строки
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:    req.ClientID,
			ServiceDate: domain.DateOnly(req.Date),
			EntryTime:   req.EntryTime,
			Motif:       strings.TrimSpace(req.Motif),
			Status:      domain.StatusScheduled,
			TotalValue:  total,
			Lines:       lines,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveAppointmentCreated(len(result.Lines))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, total=%s",
		result.ID, result.TotalValue.StringFixed(2))

	return models.FromDomainAppointment(result), nil
}
