package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"
	tableLines        = "appointment_services"
)

var headerColumns = []string{
	"id",
	"client_id",
	"service_date",
	"entry_time",
	"motif",
	"status",
	"total_value",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей и их строк
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заголовок и все строки записи.
// Атомарность обеспечивает вызывающий: метод нужно вызывать внутри транзакции.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns(
			"client_id",
			"service_date",
			"entry_time",
			"motif",
			"status",
			"total_value",
		).
		Values(
			a.ClientID,
			domain.DateOnly(a.ServiceDate),
			a.EntryTime,
			a.Motif,
			a.Status,
			a.TotalValue,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, wrapExec("Create - execute insert", err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	for _, line := range a.Lines {
		line.AppointmentID = a.ID
		if _, err := r.InsertLine(ctx, line); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// GetByID получает запись со всеми строками.
// Внутри транзакции заголовок блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(headerColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanHeader(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	lines, err := r.linesByAppointments(ctx, []int64{a.ID})
	if err != nil {
		return nil, err
	}
	a.Lines = lines[a.ID]

	return a, nil
}

// List возвращает страницу записей, упорядоченную по (service_date, entry_time, id)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) (*domain.AppointmentPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := listConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(tableAppointments + " a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%w: List - count: %w", ErrExecQuery, err)
	}

	page := &domain.AppointmentPage{
		Appointments: make([]*domain.Appointment, 0),
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
	if total == 0 {
		return page, nil
	}

	columns := make([]string, len(headerColumns))
	for i, c := range headerColumns {
		columns[i] = "a." + c
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableAppointments + " a").
		Where(where).
		OrderBy("a.service_date ASC", "a.entry_time ASC", "a.id ASC").
		Limit(uint64(filter.PageSize)).
		Offset(filter.Offset()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, filter.PageSize)
	for rows.Next() {
		a, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		page.Appointments = append(page.Appointments, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	lines, err := r.linesByAppointments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range page.Appointments {
		a.Lines = lines[a.ID]
	}

	return page, nil
}

// UpdateHeader обновляет дату, время, мотив и итог записи
func (r *Repository) UpdateHeader(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("service_date", domain.DateOnly(a.ServiceDate)).
		Set("entry_time", a.EntryTime).
		Set("motif", a.Motif).
		Set("total_value", a.TotalValue).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateHeader - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateHeader", query, args, ErrAppointmentNotFound)
}

// UpdateStatus меняет статус записи; motif, если передан, заменяет мотив (например, причина отмены)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, motif *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableAppointments).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if motif != nil {
		updateBuilder = updateBuilder.Set("motif", *motif)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args, ErrAppointmentNotFound)
}

// UpdateTotal сохраняет пересчитанный итог
func (r *Repository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("total_value", total).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateTotal", query, args, ErrAppointmentNotFound)
}

// Delete физически удаляет запись; строки удаляются каскадом
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableAppointments).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args, ErrAppointmentNotFound)
}

func (r *Repository) execAffectingOne(
	ctx context.Context,
	executor DBExecutor,
	op string,
	query string,
	args []interface{},
	notFound error,
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExec(op+" - execute", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

// listConditions строит WHERE для List; таблица записей имеет псевдоним "a"
func listConditions(filter domain.AppointmentFilter) squirrel.And {
	where := squirrel.And{}

	if filter.ClientID != nil {
		where = append(where, squirrel.Eq{"a.client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"a.service_date": domain.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"a.service_date": domain.DateOnly(*filter.DateTo)})
	}
	if filter.EmployeeID != nil {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM "+tableLines+" s WHERE s.appointment_id = a.id AND s.employee_id = ?)",
			*filter.EmployeeID,
		))
	}
	if filter.ServiceID != nil {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM "+tableLines+" s WHERE s.appointment_id = a.id AND s.service_id = ?)",
			*filter.ServiceID,
		))
	}

	return where
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHeader(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ServiceDate,
		&a.EntryTime,
		&a.Motif,
		&a.Status,
		&a.TotalValue,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ServiceDate = domain.DateOnly(a.ServiceDate)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
