package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout      = "15:04:05"
	shortTimeLayout = "15:04"
	secondsPerDay   = 24 * 60 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time overflows the day boundary")
)

// TimeString время суток в формате "HH:MM:SS" без даты и часового пояса.
// Значение "24:00:00" допустимо только как конец интервала, заканчивающегося в полночь.
type TimeString string

// NewTimeString создает TimeString из time.Time (дата и зона отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит "HH:MM:SS" или "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	secs, err := parseSeconds(s)
	if err != nil {
		return "", err
	}
	return fromSeconds(secs), nil
}

// MustTimeString парсит строку и паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String возвращает время в формате "HH:MM:SS"
func (t TimeString) String() string {
	return string(t)
}

// IsZero сообщает, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseSeconds(string(t))
	return err
}

// Seconds возвращает количество секунд от начала суток
func (t TimeString) Seconds() int {
	secs, err := parseSeconds(string(t))
	if err != nil {
		return 0
	}
	return secs
}

// AddMinutes прибавляет минуты. Результат не может выйти за 24:00:00.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	secs, err := parseSeconds(string(t))
	if err != nil {
		return "", err
	}

	result := secs + minutes*60
	if result < 0 || result > secondsPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrTimeOverflow, t, minutes)
	}

	return fromSeconds(result), nil
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

// Equal то же самое время суток (формат записи не важен)
func (t TimeString) Equal(other TimeString) bool {
	return t.Seconds() == other.Seconds()
}

// Value реализует driver.Valuer для колонок TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для колонок TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// PostgreSQL может вернуть дробные секунды: "10:00:00.000000"
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseSeconds(s string) (int, error) {
	if s == "24:00:00" || s == "24:00" {
		return secondsPerDay, nil
	}

	layout := timeLayout
	if len(s) == len(shortTimeLayout) {
		layout = shortTimeLayout
	}

	parsed, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return parsed.Hour()*3600 + parsed.Minute()*60 + parsed.Second(), nil
}

func fromSeconds(secs int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60))
}
