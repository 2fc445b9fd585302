package update_appointment

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("update_appointment: internal error")
