package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

var shiftColumns = []string{
	"id",
	"employee_id",
	"shift_date",
	"entry_time",
	"exit_time",
}

// Repository смены сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет смену. Уникальность (employee_id, shift_date) и exit > entry
// проверяет база данных.
func (r *Repository) Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employee_shifts").
		Columns("employee_id", "shift_date", "entry_time", "exit_time").
		Values(s.EmployeeID, domain.DateOnly(s.ShiftDate), s.EntryTime, s.ExitTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, wrapInsert(err)
	}

	return s, nil
}

// wrapInsert переводит нарушения ограничений employee_shifts в ошибки репозитория
func wrapInsert(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicateShift
		case pqCheckViolation:
			return ErrInvalidWindow
		}
	}
	return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
}

// GetByEmployeeAndDate получает смену сотрудника на дату
func (r *Repository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shiftColumns...).
		From("employee_shifts").
		Where(squirrel.Eq{"employee_id": employeeID, "shift_date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanShift(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndDate - scan shift: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListCovering возвращает смены на дату, целиком покрывающие [start, end)
func (r *Repository) ListCovering(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := coveringQuery(date, start, end).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCovering - scan row: %v", ErrScanRow, err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCovering - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}

// coveringQuery смены на дату, где entry <= start и exit >= end
func coveringQuery(date time.Time, start, end types.TimeString) squirrel.SelectBuilder {
	return psqlbuilder.Select(shiftColumns...).
		From("employee_shifts").
		Where(squirrel.Eq{"shift_date": domain.DateOnly(date)}).
		Where(squirrel.LtOrEq{"entry_time": start}).
		Where(squirrel.GtOrEq{"exit_time": end}).
		OrderBy("employee_id ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShift(row rowScanner) (*domain.Shift, error) {
	var s domain.Shift
	if err := row.Scan(&s.ID, &s.EmployeeID, &s.ShiftDate, &s.EntryTime, &s.ExitTime); err != nil {
		return nil, err
	}
	s.ShiftDate = domain.DateOnly(s.ShiftDate)
	return &s, nil
}
