package create_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", domain.ErrValidation)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: serviceDate is required", domain.ErrValidation)
	}

	if req.EntryTime.IsZero() {
		return fmt.Errorf("%w: entryTime is required", domain.ErrValidation)
	}
	if err := req.EntryTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid entryTime format: %v", domain.ErrValidation, err)
	}

	n := utf8.RuneCountInString(strings.TrimSpace(req.Motif))
	if n < domain.MinMotifLength || n > domain.MaxMotifLength {
		return fmt.Errorf("%w: motif must be %d-%d characters",
			domain.ErrValidation, domain.MinMotifLength, domain.MaxMotifLength)
	}

	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: at least one service line is required", domain.ErrValidation)
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом. Сегодня допускается.
func validateDate(date, now time.Time) error {
	if domain.IsPastDate(date, now) {
		return fmt.Errorf("%w: serviceDate %s is in the past", domain.ErrValidation, date.Format(domain.DateFormat))
	}
	return nil
}
