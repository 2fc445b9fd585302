package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var lineColumns = []string{
	"id",
	"appointment_id",
	"service_id",
	"employee_id",
	"quantity",
	"start_time",
	"end_time",
	"unit_price",
	"service_name",
	"duration_minutes",
	"observations",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// InsertLine добавляет строку к существующей записи
func (r *Repository) InsertLine(ctx context.Context, line *domain.ServiceLine) (*domain.ServiceLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if line.Status == "" {
		line.Status = domain.LineStatusActive
	}

	query, args, err := psqlbuilder.Insert(tableLines).
		Columns(
			"appointment_id",
			"service_id",
			"employee_id",
			"quantity",
			"start_time",
			"end_time",
			"unit_price",
			"service_name",
			"duration_minutes",
			"observations",
			"status",
		).
		Values(
			line.AppointmentID,
			line.ServiceID,
			line.EmployeeID,
			line.Quantity,
			line.StartTime,
			line.EndTime,
			line.UnitPrice,
			line.ServiceName,
			line.DurationMinutes,
			line.Observations,
			line.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertLine - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&line.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, wrapExec("InsertLine - execute insert", err)
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return line, nil
}

// UpdateLine перезаписывает изменяемые поля строки
func (r *Repository) UpdateLine(ctx context.Context, line *domain.ServiceLine) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableLines).
		Set("service_id", line.ServiceID).
		Set("employee_id", line.EmployeeID).
		Set("quantity", line.Quantity).
		Set("start_time", line.StartTime).
		Set("end_time", line.EndTime).
		Set("unit_price", line.UnitPrice).
		Set("service_name", line.ServiceName).
		Set("duration_minutes", line.DurationMinutes).
		Set("observations", line.Observations).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": line.ID, "appointment_id": line.AppointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLine - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateLine", query, args, ErrLineNotFound)
}

// CancelLine помечает строку отменённой, не трогая запись
func (r *Repository) CancelLine(ctx context.Context, appointmentID, lineID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableLines).
		Set("status", domain.LineStatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lineID, "appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CancelLine - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "CancelLine", query, args, ErrLineNotFound)
}

// linesByAppointments загружает строки для набора записей одним запросом
func (r *Repository) linesByAppointments(ctx context.Context, ids []int64) (map[int64][]*domain.ServiceLine, error) {
	result := make(map[int64][]*domain.ServiceLine, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lineColumns...).
		From(tableLines).
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("appointment_id ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: linesByAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: linesByAppointments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: linesByAppointments - scan row: %v", ErrScanRow, err)
		}
		result[line.AppointmentID] = append(result[line.AppointmentID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: linesByAppointments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func scanLine(row rowScanner) (*domain.ServiceLine, error) {
	var line domain.ServiceLine
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&line.ID,
		&line.AppointmentID,
		&line.ServiceID,
		&line.EmployeeID,
		&line.Quantity,
		&line.StartTime,
		&line.EndTime,
		&line.UnitPrice,
		&line.ServiceName,
		&line.DurationMinutes,
		&line.Observations,
		&line.Status,
		&line.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return &line, nil
}
