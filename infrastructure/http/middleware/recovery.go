package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

// Recovery turns a panic in any handler into the generic 500 envelope. The
// panic value and stack are only logged.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error(r.Context(), "Panic recovered", fmt.Errorf("panic: %v", v), map[string]interface{}{
						"method": r.Method,
						"path":   r.URL.Path,
						"stack":  string(debug.Stack()),
					})
					response.InternalServerError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
