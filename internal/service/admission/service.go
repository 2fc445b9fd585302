package admission

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	shiftRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service допускает строки в расписание: проверяет каталог, снимает цену и длительность,
// вычисляет окно и проверяет смену сотрудника и пересечения.
// Вызывать нужно внутри транзакции, в которой потом будут записаны строки.
type Service struct {
	catalog      CatalogRepository
	shifts       ShiftRepository
	checker      ConflictChecker
	metrics      Metrics
	requireShift bool
	logger       Logger
}

// NewService создает сервис допуска строк
func NewService(
	catalog CatalogRepository,
	shifts ShiftRepository,
	checker ConflictChecker,
	metrics Metrics,
	requireShift bool,
	logger Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		shifts:       shifts,
		checker:      checker,
		metrics:      metrics,
		requireShift: requireShift,
		logger:       logger,
	}
}

// Admit собирает и проверяет новые строки. Строка без времени начала стартует,
// когда закончилась предыдущая строка запроса (первая - во время EntryTime).
// Любая отклонённая строка отклоняет весь набор.
func (s *Service) Admit(ctx context.Context, req Request) ([]*domain.ServiceLine, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one service line is required", domain.ErrValidation)
	}
	if len(req.Lines) > domain.MaxLinesPerRequest {
		return nil, fmt.Errorf("%w: at most %d service lines per request", domain.ErrValidation, domain.MaxLinesPerRequest)
	}

	cursor := req.EntryTime
	lines := make([]*domain.ServiceLine, 0, len(req.Lines))
	indexes := make([]int, 0, len(req.Lines))

	for i, lr := range req.Lines {
		start := cursor
		if lr.StartTime != nil {
			start = *lr.StartTime
		}

		line, err := s.ResolveLine(ctx, i, lr, start, nil)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
		indexes = append(indexes, i)
		cursor = line.EndTime
	}

	err := s.Verify(ctx, Check{
		Operation:      req.Operation,
		Date:           req.Date,
		Lines:          lines,
		Indexes:        indexes,
		ExcludeLineIDs: req.ExcludeLineIDs,
	})
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// ResolveLine строит строку из запроса.
// prev - прежнее состояние редактируемой строки: если услуга не менялась, снимок цены
// и длительности сохраняется, а каталог повторно не читается; сотрудник проверяется,
// только если он сменился.
func (s *Service) ResolveLine(
	ctx context.Context,
	index int,
	lr LineRequest,
	start types.TimeString,
	prev *domain.ServiceLine,
) (*domain.ServiceLine, error) {
	if err := validateLine(index, lr, start); err != nil {
		return nil, err
	}

	line := &domain.ServiceLine{
		ServiceID:    lr.ServiceID,
		EmployeeID:   lr.EmployeeID,
		Quantity:     lr.Quantity,
		StartTime:    start,
		Observations: lr.Observations,
		Status:       domain.LineStatusActive,
	}

	if prev != nil && prev.ServiceID == lr.ServiceID {
		line.UnitPrice = prev.UnitPrice
		line.ServiceName = prev.ServiceName
		line.DurationMinutes = prev.DurationMinutes
	} else {
		svc, err := s.activeService(ctx, index, lr.ServiceID)
		if err != nil {
			return nil, err
		}
		line.UnitPrice = svc.UnitPrice
		line.ServiceName = svc.Name
		line.DurationMinutes = svc.DurationMinutes
	}

	if prev == nil || prev.EmployeeID != lr.EmployeeID {
		if err := s.activeEmployee(ctx, index, lr.EmployeeID); err != nil {
			return nil, err
		}
	}

	end, err := start.AddMinutes(line.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", domain.ErrValidation, index, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: line %d: service duration must be positive", domain.ErrValidation, index)
	}
	line.EndTime = end

	return line, nil
}

// Verify проверяет, что окна строк лежат в сменах сотрудников и ни с чем не пересекаются
func (s *Service) Verify(ctx context.Context, chk Check) error {
	if len(chk.Lines) == 0 {
		return nil
	}

	byIndex := make(map[int]domain.LineConflict)

	if s.requireShift {
		for i, line := range chk.Lines {
			inside, err := s.insideShift(ctx, chk, line)
			if err != nil {
				return err
			}
			if !inside {
				byIndex[chk.Indexes[i]] = domain.LineConflict{
					Index:      chk.Indexes[i],
					ServiceID:  line.ServiceID,
					EmployeeID: line.EmployeeID,
					Start:      line.StartTime,
					End:        line.EndTime,
					Reason:     domain.ReasonOutsideShift,
				}
			}
		}
	}

	cands := make([]conflicts.Candidate, len(chk.Lines))
	for i, line := range chk.Lines {
		cands[i] = conflicts.Candidate{
			Index:      chk.Indexes[i],
			ServiceID:  line.ServiceID,
			EmployeeID: line.EmployeeID,
			Start:      line.StartTime,
			End:        line.EndTime,
		}
	}

	overlaps, err := s.checker.CheckBatch(ctx, chk.Date, cands, chk.ExcludeLineIDs)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		s.logger.Error("%s: conflict check failed: %v", chk.Operation, err)
		return fmt.Errorf("%w: Verify - check conflicts: %w", ErrInternal, err)
	}
	for _, c := range overlaps {
		if _, ok := byIndex[c.Index]; !ok {
			byIndex[c.Index] = c
		}
	}

	if len(byIndex) == 0 {
		return nil
	}

	result := &domain.ScheduleConflictError{Lines: make([]domain.LineConflict, 0, len(byIndex))}
	for _, c := range byIndex {
		result.Lines = append(result.Lines, c)
		s.metrics.ObserveConflict(chk.Operation, c.Reason)
	}
	sort.Slice(result.Lines, func(i, j int) bool { return result.Lines[i].Index < result.Lines[j].Index })

	s.logger.Warn("%s: %v", chk.Operation, result)
	return result
}

func (s *Service) insideShift(ctx context.Context, chk Check, line *domain.ServiceLine) (bool, error) {
	shift, err := s.shifts.GetByEmployeeAndDate(ctx, line.EmployeeID, chk.Date)
	if errors.Is(err, shiftRepo.ErrShiftNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("%s: failed to get shift of employee=%d: %v", chk.Operation, line.EmployeeID, err)
		return false, fmt.Errorf("%w: insideShift - get shift: %w", ErrInternal, err)
	}
	return shift.Covers(line.StartTime, line.EndTime), nil
}

func (s *Service) activeService(ctx context.Context, index int, id int64) (*domain.Service, error) {
	svc, err := s.catalog.GetService(ctx, id)
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return nil, &domain.ReferenceError{Index: index, Entity: "service", ID: id}
	}
	if err != nil {
		s.logger.Error("ResolveLine: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: activeService - get service: %w", ErrInternal, err)
	}
	if !svc.Active {
		return nil, &domain.ReferenceError{Index: index, Entity: "service", ID: id}
	}
	return svc, nil
}

func (s *Service) activeEmployee(ctx context.Context, index int, id int64) error {
	emp, err := s.catalog.GetEmployee(ctx, id)
	if errors.Is(err, catalogRepo.ErrEmployeeNotFound) {
		return &domain.ReferenceError{Index: index, Entity: "employee", ID: id}
	}
	if err != nil {
		s.logger.Error("ResolveLine: failed to get employee id=%d: %v", id, err)
		return fmt.Errorf("%w: activeEmployee - get employee: %w", ErrInternal, err)
	}
	if !emp.CanPerformServices() {
		return &domain.ReferenceError{Index: index, Entity: "employee", ID: id}
	}
	return nil
}

func validateLine(index int, lr LineRequest, start types.TimeString) error {
	if lr.ServiceID <= 0 {
		return fmt.Errorf("%w: line %d: serviceId must be positive", domain.ErrValidation, index)
	}
	if lr.EmployeeID <= 0 {
		return fmt.Errorf("%w: line %d: employeeId must be positive", domain.ErrValidation, index)
	}
	if lr.Quantity < domain.MinLineQuantity || lr.Quantity > domain.MaxLineQuantity {
		return fmt.Errorf("%w: line %d: quantity must be between %d and %d",
			domain.ErrValidation, index, domain.MinLineQuantity, domain.MaxLineQuantity)
	}
	if lr.Observations != nil && utf8.RuneCountInString(*lr.Observations) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: line %d: observations longer than %d characters",
			domain.ErrValidation, index, domain.MaxObservationsLength)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: line %d: invalid start time: %v", domain.ErrValidation, index, err)
	}
	return nil
}
