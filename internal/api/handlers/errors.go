package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	msgValidation        = "некорректные входные данные"
	msgReferenceInvalid  = "услуга или сотрудник не найдены или неактивны"
	msgScheduleConflict  = "выбранное время пересекается с существующими записями"
	msgIllegalTransition = "недопустимая смена статуса"
	msgImmutable         = "запись завершена или отменена и не может быть изменена"
	msgNotDeletable      = "запись можно удалить только в статусе scheduled или cancelled_by_client"
	msgApptNotFound      = "запись не найдена"
	msgLineNotFound      = "строка услуги не найдена"
	msgSerialization     = "параллельное изменение расписания, повторите запрос"
)

// ConflictLine строка, отклонённая проверкой расписания
type ConflictLine struct {
	Index      int              `json:"index"`
	ServiceID  int64            `json:"serviceId"`
	EmployeeID int64            `json:"employeeId"`
	StartTime  string           `json:"startTime"`
	EndTime    string           `json:"endTime"`
	Reason     string           `json:"reason"`
	Conflicts  []ConflictWindow `json:"conflicts,omitempty"`
}

// ConflictWindow занятое окно, с которым пересеклась строка
type ConflictWindow struct {
	AppointmentID int64  `json:"appointmentId,omitempty"`
	LineID        int64  `json:"lineId,omitempty"`
	ServiceID     int64  `json:"serviceId"`
	EmployeeID    int64  `json:"employeeId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// ConflictResponse тело ответа 409 с перечнем отклонённых строк
type ConflictResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Lines   []ConflictLine `json:"lines"`
}

// TransitionResponse тело ответа с недопустимым переходом
type TransitionResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// ReferenceResponse тело ответа с неверной ссылкой
type ReferenceResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Index   int    `json:"index"`
	Entity  string `json:"entity"`
	ID      int64  `json:"id"`
}

// RespondDomainError отвечает по виду ошибки и возвращает выбранный статус.
// Вид ошибки определяется только через errors.Is/As.
func RespondDomainError(w http.ResponseWriter, err error) int {
	var (
		conflictErr   *domain.ScheduleConflictError
		transitionErr *domain.TransitionError
		referenceErr  *domain.ReferenceError
	)

	switch {
	case errors.As(err, &conflictErr):
		RespondJSON(w, http.StatusConflict, newConflictResponse(conflictErr))
		return http.StatusConflict

	case errors.As(err, &transitionErr):
		RespondJSON(w, http.StatusConflict, TransitionResponse{
			Code:    http.StatusConflict,
			Message: msgIllegalTransition,
			From:    string(transitionErr.From),
			To:      string(transitionErr.To),
		})
		return http.StatusConflict

	case errors.As(err, &referenceErr):
		RespondJSON(w, http.StatusUnprocessableEntity, ReferenceResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: msgReferenceInvalid,
			Index:   referenceErr.Index,
			Entity:  referenceErr.Entity,
			ID:      referenceErr.ID,
		})
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrAppointmentNotFound):
		RespondNotFound(w, msgApptNotFound)
		return http.StatusNotFound

	case errors.Is(err, domain.ErrServiceLineNotFound):
		RespondNotFound(w, msgLineNotFound)
		return http.StatusNotFound

	case errors.Is(err, domain.ErrImmutableAppointment):
		RespondConflict(w, msgImmutable)
		return http.StatusConflict

	case errors.Is(err, domain.ErrNotDeletable):
		RespondConflict(w, msgNotDeletable)
		return http.StatusConflict

	case errors.Is(err, domain.ErrReferenceInvalid):
		RespondUnprocessable(w, msgReferenceInvalid)
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, validationMessage(err))
		return http.StatusBadRequest

	case errors.Is(err, txmanager.ErrSerialization):
		RespondConflict(w, msgSerialization)
		return http.StatusConflict

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

// validationMessage отдаёт клиенту текст ошибки валидации: он собран из наших
// форматных строк и не содержит данных хранилища
func validationMessage(err error) string {
	if err == nil {
		return msgValidation
	}
	return err.Error()
}

func newConflictResponse(e *domain.ScheduleConflictError) ConflictResponse {
	resp := ConflictResponse{
		Code:    http.StatusConflict,
		Message: msgScheduleConflict,
		Lines:   make([]ConflictLine, 0, len(e.Lines)),
	}
	for _, l := range e.Lines {
		line := ConflictLine{
			Index:      l.Index,
			ServiceID:  l.ServiceID,
			EmployeeID: l.EmployeeID,
			StartTime:  l.Start.String(),
			EndTime:    l.End.String(),
			Reason:     l.Reason,
		}
		for _, o := range l.Conflicts {
			line.Conflicts = append(line.Conflicts, ConflictWindow{
				AppointmentID: o.AppointmentID,
				LineID:        o.LineID,
				ServiceID:     o.ServiceID,
				EmployeeID:    o.EmployeeID,
				StartTime:     o.Start.String(),
				EndTime:       o.End.String(),
			})
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
