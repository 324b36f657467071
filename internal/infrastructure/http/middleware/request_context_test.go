package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

func TestRequestContext_PropagatesInboundID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	var hasDeadline bool
	h := RequestContext(time.Minute)(func(c echo.Context) error {
		seen = reqcontext.RequestID(c.Request().Context())
		_, hasDeadline = c.Request().Context().Deadline()
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "abc-123" {
		t.Fatalf("expected inbound request id, got %q", seen)
	}
	if !hasDeadline {
		t.Fatal("expected a deadline on the request context")
	}
	if rec.Header().Get(echo.HeaderXRequestID) != "abc-123" {
		t.Fatalf("response header not set: %q", rec.Header().Get(echo.HeaderXRequestID))
	}
}

func TestRequestContext_GeneratesID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := RequestContext(0)(func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); ok {
			t.Error("zero timeout must not set a deadline")
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" || c.Get(RequestIDKey) == "" {
		t.Fatal("expected a generated request id")
	}
}
