package appointment

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLSTATE коды, которые репозиторий различает
const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrLineNotFound возвращается, когда строка записи не найдена
	ErrLineNotFound = errors.New("appointment.repository: service line not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrForeignKey возвращается, если ссылка на клиента, услугу или сотрудника не существует
	ErrForeignKey = errors.New("appointment.repository: referenced row does not exist")

	// ErrCheckViolation возвращается при нарушении CHECK ограничения (итог, количество, окно)
	ErrCheckViolation = errors.New("appointment.repository: check constraint violated")
)

// wrapExec классифицирует ошибку выполнения запроса.
// Исходная ошибка остаётся в цепочке, чтобы txmanager распознал конфликт сериализации.
func wrapExec(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s: %w", ErrForeignKey, op, err)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s: %w", ErrCheckViolation, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}
