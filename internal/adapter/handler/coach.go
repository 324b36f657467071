package handler

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/errors"
	coachdto "github.com/emotioncoach/emotion-coach/internal/adapter/dto/coach"
	"github.com/emotioncoach/emotion-coach/internal/adapter/dto/common"
	"github.com/emotioncoach/emotion-coach/internal/usecase/coach"
)

const maxGenerateBody = 256 << 10

// Coach serves the coaching endpoints
type Coach struct {
	svc    coach.Service
	logger *zap.Logger
}

func NewCoachHandler(svc coach.Service, logger *zap.Logger) *Coach {
	return &Coach{svc: svc, logger: logger}
}

// Generate produces a coaching reply
// @Summary      Generate coaching reply
// @Description  Accepts the legacy wire string "\"<context> (<sentiment>).\"" or a JSON object {context, sentiment}
// @Tags         Coach
// @Accept       json
// @Produce      json
// @Param        request  body      coachdto.GenerateRequest  true  "Structured request (the legacy quoted string is also accepted)"
// @Success      200      {object}  coachdto.GenerateResponse
// @Failure      400      {object}  common.ErrorResponse  "Malformed body"
// @Failure      429      {object}  common.ErrorResponse  "Model quota exceeded"
// @Failure      502      {object}  common.ErrorResponse  "Generation failed"
// @Failure      504      {object}  common.ErrorResponse  "Upstream timeout"
// @Router       /generate [post]
func (h *Coach) Generate(c echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxGenerateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(maxGenerateBody))
		}
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ctx := c.Request().Context()

	var reply *coach.Reply
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var req coachdto.GenerateRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		if err := c.Validate(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		reply, err = h.svc.Generate(ctx, coach.Request{Context: req.Context, Sentiment: req.Sentiment})
		if err != nil {
			return HandleError(h.logger, c, err)
		}
	} else {
		reply, err = h.svc.GenerateFromWire(ctx, string(body))
		if err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccess(h.logger, c, coachdto.GenerateResponse{Message: reply.Message, HTML: reply.HTML})
}

// ListReplies returns the most recent coaching replies
// @Summary      List coaching replies
// @Description  Newest first; requires the history database
// @Tags         Coach
// @Produce      json
// @Param        limit  query     int  false  "Max items (default 20, max 100)"
// @Success      200    {object}  common.ListResponse
// @Failure      400    {object}  common.ErrorResponse  "Invalid limit"
// @Failure      501    {object}  common.ErrorResponse  "History not enabled"
// @Router       /replies [get]
func (h *Coach) ListReplies(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	data := make([]coachdto.ReplyItem, 0, len(items))
	for _, r := range items {
		data = append(data, coachdto.NewReplyItem(r))
	}
	return HandleSuccess(h.logger, c, common.ListResponse{Data: data, Count: len(data)})
}
