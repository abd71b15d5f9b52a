package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notekeeper/internal/platform/apperr"
)

// errorHandler maps errors to JSON responses. Taxonomy errors (apperr) keep
// their status and message; anything else is logged and surfaced as a generic
// 500 so internal details never leak to the caller.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = apperr.HTTPStatus(ae)
			message = ae.Message
		case errors.As(err, &he):
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		default:
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, map[string]string{"error": message})
		}
		if werr != nil {
			logger.Error("write error response", zap.Error(werr))
		}
	}
}
