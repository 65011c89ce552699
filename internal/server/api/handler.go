// Package api реализует HTTP-слой сервиса учётных записей.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - проверку наличия обязательных полей в теле запроса;
//   - маппинг ошибок сервиса в HTTP-коды и безопасные сообщения.
//
// Маршруты регистрируются в пакете internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-user-accounts/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrPayloadTooLarge — тело запроса больше лимита RequestSize.
var ErrPayloadTooLarge = errors.New("payload too large")

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware аутентификации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, models.ErrorResponse{
		Error: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса. Слишком большое тело — 413, кривой JSON — 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, ErrPayloadTooLarge)
			return false
		}
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return false
	}
	return true
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
//
//   - NotFound     -> 404
//   - Conflict     -> 400
//   - Unauthorized -> 401
//   - остальное    -> 500, настоящая ошибка только в логе
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, serr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serr.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, serr.ErrUnauthorized):
		status = http.StatusUnauthorized
	default:
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
	}
	writeJSON(w, status, models.ErrorResponse{Error: serr.SafeMessage(err)})
}
