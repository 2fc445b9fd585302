package shifts

import "errors"

var (
	// ErrDuplicateShift возвращается, если у сотрудника уже есть смена на эту дату
	ErrDuplicateShift = errors.New("employee already has a shift on this date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shifts: internal error")
)
