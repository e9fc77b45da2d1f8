package middleware

import (
	"net/http"
	"time"
)

// Timeout ограничивает время обработки запроса
// Контекст запроса получает дедлайн, поэтому зависшее хранилище не держит обработчик бесконечно
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, `{"error":"превышено время обработки запроса"}`)
	}
}
