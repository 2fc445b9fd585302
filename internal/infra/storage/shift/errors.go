package shift

import "errors"

var (
	// ErrShiftNotFound возвращается, когда у сотрудника нет смены на дату
	ErrShiftNotFound = errors.New("shift.repository: shift not found")

	// ErrDuplicateShift возвращается при второй смене сотрудника на ту же дату
	ErrDuplicateShift = errors.New("shift.repository: employee already has a shift on this date")

	// ErrInvalidWindow возвращается, если время ухода не позже времени прихода
	ErrInvalidWindow = errors.New("shift.repository: exit time must be after entry time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("shift.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("shift.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("shift.repository: failed to scan row")
)
