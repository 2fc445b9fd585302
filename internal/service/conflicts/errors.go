package conflicts

import "errors"

// ErrInternal возвращается при ошибках чтения занятости
var ErrInternal = errors.New("conflicts: internal error")
