package find_available_employees

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("find_available_employees: internal error")
