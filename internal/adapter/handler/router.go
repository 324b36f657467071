package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/emotioncoach/emotion-coach/internal/adapter/dto/common"
	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// HealthCheck probes an optional dependency
type HealthCheck func(ctx context.Context) error

// Router holds the handlers of one service
type Router struct {
	service string
	cfg     *config.ServerConfig
	emotion *Emotion
	coach   *Coach
	checks  map[string]HealthCheck
}

// NewEmotionRouter routes the emotion inference service
func NewEmotionRouter(cfg *config.ServerConfig, h *Emotion) *Router {
	return &Router{service: "emotion", cfg: cfg, emotion: h, checks: map[string]HealthCheck{}}
}

// NewCoachRouter routes the coaching service
func NewCoachRouter(cfg *config.ServerConfig, h *Coach) *Router {
	return &Router{service: "coach", cfg: cfg, coach: h, checks: map[string]HealthCheck{}}
}

// AddCheck reports the named dependency in /health
func (rt *Router) AddCheck(name string, check HealthCheck) {
	rt.checks[name] = check
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.hello)
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(rt.service)))

	if rt.emotion != nil {
		e.POST("/predict", rt.emotion.Predict)
		e.GET("/predictions", rt.emotion.ListPredictions)
	}
	if rt.coach != nil {
		e.POST("/generate", rt.coach.Generate)
		e.GET("/replies", rt.coach.ListReplies)
	}
}

// hello is the liveness check the browser client polls
func (rt *Router) hello(c echo.Context) error {
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Hello World"})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:      "ok",
		Service:     rt.service,
		Environment: rt.cfg.Environment,
	}

	if len(rt.checks) > 0 {
		resp.Components = make(map[string]string, len(rt.checks))
		for name, check := range rt.checks {
			if err := check(c.Request().Context()); err != nil {
				resp.Components[name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
