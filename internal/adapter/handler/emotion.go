package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/internal/adapter/dto/common"
	emotiondto "github.com/emotioncoach/emotion-coach/internal/adapter/dto/emotion"
	"github.com/emotioncoach/emotion-coach/internal/usecase/emotion"
)

// multipartOverhead is allowed on top of the file limit for boundaries and part headers
const multipartOverhead = 1 << 20

// Emotion serves the emotion inference endpoints
type Emotion struct {
	svc            emotion.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewEmotionHandler creates the handler; maxUploadBytes <= 0 disables the size check
func NewEmotionHandler(svc emotion.Service, maxUploadBytes int64, logger *zap.Logger) *Emotion {
	return &Emotion{svc: svc, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Predict classifies the sentiment of an uploaded recording
// @Summary      Predict sentiment
// @Description  Normalizes the uploaded recording, describes voice and face, classifies the sentiment and transcribes speech
// @Tags         Emotion
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Browser-recorded audio or video"
// @Success      200  {object}  emotiondto.PredictResponse  "Prediction (or {sentiment, text: \"No text found\"} when nothing was said)"
// @Failure      400  {object}  common.ErrorResponse  "Missing or unreadable media"
// @Failure      413  {object}  common.ErrorResponse  "Upload too large"
// @Failure      422  {object}  common.ErrorResponse  "Media could not be normalized"
// @Failure      502  {object}  common.ErrorResponse  "Classifier or transcription failure"
// @Failure      504  {object}  common.ErrorResponse  "Upstream timeout"
// @Router       /predict [post]
func (h *Emotion) Predict(c echo.Context) error {
	req := c.Request()
	if h.maxUploadBytes > 0 {
		if req.ContentLength > h.maxUploadBytes+multipartOverhead {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadBytes))
		}
		req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadBytes))
		}
		return HandleError(h.logger, c, errors.ErrMissingFile("file"))
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadBytes))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidMedia(err))
	}
	defer src.Close()

	result, err := h.svc.Predict(req.Context(), emotion.Upload{
		Reader:      src,
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if result.NoSpeech {
		return HandleSuccess(h.logger, c, emotiondto.NoSpeechResponse{
			Sentiment: result.Sentiment.String(),
			Text:      emotiondto.NoTextFound,
			VideoURL:  result.VideoURL,
		})
	}
	return HandleSuccess(h.logger, c, emotiondto.PredictResponse{
		Sentiment:     result.Sentiment.String(),
		Transcription: result.Transcription,
		InputText:     result.Narrative,
		VideoURL:      result.VideoURL,
	})
}

// ListPredictions returns the most recent predictions
// @Summary      List predictions
// @Description  Newest first; requires the history database
// @Tags         Emotion
// @Produce      json
// @Param        limit  query     int  false  "Max items (default 20, max 100)"
// @Success      200    {object}  common.ListResponse
// @Failure      400    {object}  common.ErrorResponse  "Invalid limit"
// @Failure      501    {object}  common.ErrorResponse  "History not enabled"
// @Router       /predictions [get]
func (h *Emotion) ListPredictions(c echo.Context) error {
	limit, err := parseLimit(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	data := make([]emotiondto.PredictionItem, 0, len(items))
	for _, p := range items {
		data = append(data, emotiondto.NewPredictionItem(p))
	}
	return HandleSuccess(h.logger, c, common.ListResponse{Data: data, Count: len(data)})
}
