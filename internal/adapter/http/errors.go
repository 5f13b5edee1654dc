package http

import (
	"net/http"

	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

// errorReporter writes the error envelope. Anything that maps to a 500 is
// logged first since the client only sees a generic message.
type errorReporter struct {
	logger logger.Logger
}

func (e errorReporter) fail(w http.ResponseWriter, r *http.Request, err error) {
	if appErr := apperr.MapError(err); appErr.Code == apperr.CodeInternal && e.logger != nil {
		e.logger.Error(r.Context(), "Unhandled request error", err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}
	response.FromError(w, err)
}
