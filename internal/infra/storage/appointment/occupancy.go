package appointment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// ListOccupancies возвращает активные строки живых записей на дату.
// Отменённые строки и записи в статусах cancelled_by_client / no_show ресурс не занимают.
//
// Внутри транзакции найденные строки блокируются (FOR UPDATE OF s): вместе с SERIALIZABLE
// это не даёт двум параллельным запросам пройти проверку на одно и то же окно.
func (r *Repository) ListOccupancies(ctx context.Context, filter domain.OccupancyFilter) ([]domain.Occupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	released := make([]string, len(domain.ReleasedStatuses))
	for i, s := range domain.ReleasedStatuses {
		released[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.appointment_id",
		"s.service_id",
		"s.employee_id",
		"a.service_date",
		"s.start_time",
		"s.end_time",
	).
		From(tableLines + " s").
		Join(tableAppointments + " a ON a.id = s.appointment_id").
		Where(squirrel.Eq{"a.service_date": domain.DateOnly(filter.Date)}).
		Where(squirrel.Eq{"s.status": domain.LineStatusActive}).
		Where(squirrel.NotEq{"a.status": released})

	if len(filter.ServiceIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.service_id": filter.ServiceIDs})
	}
	if len(filter.EmployeeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.employee_id": filter.EmployeeIDs})
	}
	if len(filter.ExcludeLineIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"s.id": filter.ExcludeLineIDs})
	}

	selectBuilder = selectBuilder.OrderBy("s.start_time ASC", "s.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancies - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancies - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancies := make([]domain.Occupancy, 0)
	for rows.Next() {
		var o domain.Occupancy
		if err := rows.Scan(
			&o.LineID,
			&o.AppointmentID,
			&o.ServiceID,
			&o.EmployeeID,
			&o.Date,
			&o.Start,
			&o.End,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOccupancies - scan row: %v", ErrScanRow, err)
		}
		o.Date = domain.DateOnly(o.Date)
		occupancies = append(occupancies, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupancies - rows error: %w", ErrScanRow, err)
	}

	return occupancies, nil
}
