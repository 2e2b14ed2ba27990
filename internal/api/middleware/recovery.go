package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dkoval/barbershop-booking/internal/api/handlers"
)

// RecoveryLogger интерфейс для логирования паник
type RecoveryLogger interface {
	Error(format string, v ...interface{})
}

// Recovery возвращает middleware, перехватывающее паники обработчиков
func Recovery(logger RecoveryLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered: %s %s: %v\n%s",
						r.Method, r.URL.Path, err, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
