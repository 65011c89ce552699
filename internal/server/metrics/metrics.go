// Package metrics — все метрики Prometheus сервера пользователей.
//
// Метрики регистрируются в дефолтном реестре через promauto при импорте пакета,
// отдаются наружу хендлером /metrics (promhttp).
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	serr "github.com/IvanChernomyrdin/go-user-accounts/internal/shared/errors"
)

const namespace = "users"

// Результаты операций для лейбла result.
const (
	ResultOK           = "ok"
	ResultNotFound     = "not_found"
	ResultConflict     = "conflict"
	ResultUnauthorized = "unauthorized"
	ResultError        = "error"
)

// OperationsTotal считает вызовы операций сервиса пользователей.
// Лейблы:
//   - operation: create|login|get_by_id|get_by_email|list|update|delete
//   - result: ok|not_found|conflict|unauthorized|error
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of user service operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// HTTPRequestsTotal считает HTTP-запросы по методу, шаблону маршрута и статусу.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration — время обработки HTTP-запроса.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Result переводит ошибку сервиса в значение лейбла result.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, serr.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, serr.ErrConflict):
		return ResultConflict
	case errors.Is(err, serr.ErrUnauthorized):
		return ResultUnauthorized
	}
	return ResultError
}

// ObserveOperation увеличивает счётчик операции с результатом по ошибке.
func ObserveOperation(operation string, err error) {
	OperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}
