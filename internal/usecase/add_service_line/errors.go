package add_service_line

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("add_service_line: internal error")
