package update_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", domain.ErrValidation)
	}

	if req.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	if req.EntryTime != nil {
		if err := req.EntryTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid entryTime format: %v", domain.ErrValidation, err)
		}
	}

	if req.Motif != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*req.Motif))
		if n < domain.MinMotifLength || n > domain.MaxMotifLength {
			return fmt.Errorf("%w: motif must be %d-%d characters",
				domain.ErrValidation, domain.MinMotifLength, domain.MaxMotifLength)
		}
	}

	if len(req.Lines) > domain.MaxLinesPerRequest {
		return fmt.Errorf("%w: at most %d service lines per request", domain.ErrValidation, domain.MaxLinesPerRequest)
	}

	seen := make(map[int64]struct{}, len(req.Lines))
	for _, p := range req.Lines {
		if p.ID <= 0 {
			return fmt.Errorf("%w: line id must be positive", domain.ErrValidation)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: line id=%d is listed twice", domain.ErrValidation, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}

// validateDate проверяет, что новая дата визита не в прошлом. Сегодня допускается.
func validateDate(date, now time.Time) error {
	if domain.IsPastDate(date, now) {
		return fmt.Errorf("%w: serviceDate %s is in the past", domain.ErrValidation, date.Format(domain.DateFormat))
	}
	return nil
}
