package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/internal/adapter/dto/common"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// getRequestID reads the ID assigned by the RequestID middleware, falling back to the inbound header
func getRequestID(c echo.Context) string {
	if c == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	if c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as the response body with status 200
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, data)
}

// HandleError centralizes error handling and logging.
// AppErrors keep their status; anything else becomes a 500.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Any("details", appErr.Details),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	})
}

// ErrorHandler renders errors raised outside handlers (routing, middleware) with the same envelope
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			code := errors.ErrorCode_INTERNAL
			switch he.Code {
			case http.StatusNotFound:
				code = errors.ErrorCode_NOT_FOUND
			case http.StatusMethodNotAllowed, http.StatusBadRequest:
				code = errors.ErrorCode_INVALID_ARGUMENT
			case http.StatusRequestEntityTooLarge:
				code = errors.ErrorCode_PAYLOAD_TOO_LARGE
			}

			info := ""
			if he.Internal != nil {
				info = he.Internal.Error()
			}
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}

			if logger != nil && he.Code >= http.StatusInternalServerError {
				logger.Error("http.response.error", zap.String("request_id", getRequestID(c)), zap.Error(err))
			}
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(he.Code)
				return
			}
			_ = c.JSON(he.Code, common.ErrorResponse{Code: code, Message: msg, Info: info})
			return
		}

		_ = HandleError(logger, c, err)
	}
}

// parseLimit reads ?limit=N, defaulting to 20 and capping at 100
func parseLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.ErrInvalidArgument("limit must be a positive integer")
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, nil
}
