package admission

import "errors"

// ErrInternal возвращается при ошибках чтения каталога или смен
var ErrInternal = errors.New("admission: internal error")
