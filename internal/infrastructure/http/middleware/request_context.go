package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

// RequestIDKey is the echo context key holding the request ID
const RequestIDKey = "request_id"

// RequestContext returns an Echo middleware that binds the request ID assigned by
// middleware.RequestID to the request context and bounds the whole request by timeout.
// A non-positive timeout leaves the request unbounded.
func RequestContext(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}

			ctx, cancel := reqcontext.Begin(c.Request().Context(), id, timeout)
			defer cancel()

			id = reqcontext.RequestID(ctx)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set(RequestIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
