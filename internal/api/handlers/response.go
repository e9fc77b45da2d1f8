// Package handlers общие помощники HTTP обработчиков: разбор JSON и ответы с ошибками
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос"

	// RetryAfterSeconds подсказка клиенту при временной недоступности хранилища
	RetryAfterSeconds = "1"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
}

// DecodeJSON разбирает тело запроса; неизвестные поля и лишние данные после объекта - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondNoContent 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusOf HTTP статус по виду ошибки
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает на ошибку usecase или сервиса
// Код причины (reason) передается клиенту для ошибок с причиной,
// детали валидации - только для ошибок валидации
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusOf(err)

	var reasonErr *domain.ReasonError
	switch {
	case status == http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", RetryAfterSeconds)
		RespondError(w, status, msgStoreUnavailable)

	case errors.As(err, &reasonErr) && status != http.StatusInternalServerError:
		resp := ErrorResponse{Error: reasonErr.Message, Reason: string(reasonErr.Reason)}
		if status == http.StatusBadRequest {
			resp.Details = err.Error()
		}
		RespondJSON(w, status, resp)

	case errors.As(err, &reasonErr):
		// ошибка конфигурации календаря
		RespondJSON(w, status, ErrorResponse{Error: msgInternalError, Reason: string(reasonErr.Reason)})

	default:
		RespondInternalError(w)
	}
}

// Describe краткое описание ошибки для логов обработчиков
func Describe(err error) string {
	if reason, ok := domain.ReasonOf(err); ok {
		return fmt.Sprintf("%s (%v)", reason, err)
	}
	return err.Error()
}
