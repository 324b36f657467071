package emotion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	apperrors "github.com/emotioncoach/emotion-coach/errors"
	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
	"github.com/emotioncoach/emotion-coach/internal/domain/repositories"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/media"
	"github.com/emotioncoach/emotion-coach/internal/infrastructure/storage"
	ucerrors "github.com/emotioncoach/emotion-coach/internal/usecase/errors"
	"github.com/emotioncoach/emotion-coach/pkg/ai"
	"github.com/emotioncoach/emotion-coach/pkg/reqcontext"
)

const normalizedName = "normalized.mp4"

// Transcoder normalizes an upload into the codec pair the extractors expect
type Transcoder interface {
	Transcode(ctx context.Context, in, out string) error
}

// FeatureExtractor wraps the acoustic and facial extractors
type FeatureExtractor interface {
	AudioFeatures(ctx context.Context, path string) (map[string]float64, error)
	ActionUnits(ctx context.Context, path string) ([][]float64, error)
}

// Classifier scores the classifier input against the seven sentiments
type Classifier interface {
	Classify(ctx context.Context, text string) ([]float64, error)
}

// Archiver keeps a copy of the original upload
type Archiver interface {
	ArchiveFile(ctx context.Context, objectName, filePath, contentType string) (string, error)
}

// Options tunes the pipeline
type Options struct {
	WorkDir           string
	AUThreshold       float64
	TranscodeTimeout  time.Duration
	FeaturesTimeout   time.Duration
	ClassifyTimeout   time.Duration
	TranscribeTimeout time.Duration
}

// Upload is the media file received from the client
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// Result is the outcome of one prediction
type Result struct {
	Sentiment       entities.Sentiment
	Transcription   string
	NoSpeech        bool
	Narrative       string
	AudioNarrative  string
	FacialNarrative string
	VideoURL        string
}

// Service runs the emotion inference pipeline
type Service interface {
	Predict(ctx context.Context, upload Upload) (*Result, error)
	History(ctx context.Context, limit int) ([]*entities.Prediction, error)
}

type emotionService struct {
	transcoder  Transcoder
	features    FeatureExtractor
	classifier  Classifier
	transcriber ai.Transcriber
	archiver    Archiver
	predictions repositories.PredictionRepository
	opts        Options
	logger      *zap.Logger
}

// NewService wires the pipeline. archiver and predictions may be nil.
func NewService(
	transcoder Transcoder,
	features FeatureExtractor,
	classifier Classifier,
	transcriber ai.Transcriber,
	archiver Archiver,
	predictions repositories.PredictionRepository,
	opts Options,
	logger *zap.Logger,
) Service {
	if opts.AUThreshold <= 0 {
		opts.AUThreshold = DefaultAUThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &emotionService{
		transcoder:  transcoder,
		features:    features,
		classifier:  classifier,
		transcriber: transcriber,
		archiver:    archiver,
		predictions: predictions,
		opts:        opts,
		logger:      logger,
	}
}

// audioAnalysis and facialAnalysis hold soft-failing extractor outputs
type audioAnalysis struct {
	narrative string
	features  *entities.AcousticFeatures
}

type facialAnalysis struct {
	narrative string
	active    []int
}

// Predict normalizes the upload, then runs feature narratives + classification and
// transcription concurrently inside a private workspace.
func (s *emotionService) Predict(ctx context.Context, upload Upload) (*Result, error) {
	requestID := reqcontext.RequestID(ctx)
	log := s.logger.With(zap.String("request_id", requestID))

	ws, err := media.NewWorkspace(s.opts.WorkDir)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			log.Warn("emotion.workspace.cleanup_failed", zap.Error(err))
		}
	}()

	input, size, err := ws.SaveUpload(upload.Reader, upload.Filename)
	if err != nil {
		return nil, apperrors.ErrInvalidMedia(err)
	}
	if size == 0 {
		return nil, apperrors.ErrInvalidMedia(ucerrors.ErrEmptyUpload)
	}

	normalized := ws.Path(normalizedName)
	if err := s.transcode(ctx, input, normalized); err != nil {
		return nil, err
	}

	var (
		audio    audioAnalysis
		facial   facialAnalysis
		result   = &Result{}
		videoURL string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			audio = s.analyzeAudio(gctx, normalized, log)
		}()
		go func() {
			defer wg.Done()
			facial = s.analyzeFace(gctx, normalized, log)
		}()
		wg.Wait()

		sentiment, err := s.classify(gctx, ClassifierInput(audio.narrative, facial.narrative))
		if err != nil {
			return err
		}
		result.Sentiment = sentiment
		return nil
	})

	g.Go(func() error {
		text, noSpeech, err := s.transcribe(gctx, normalized)
		if err != nil {
			return err
		}
		result.Transcription = text
		result.NoSpeech = noSpeech
		return nil
	})

	if s.archiver != nil {
		g.Go(func() error {
			videoURL = s.archive(gctx, requestID, upload, input, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.AudioNarrative = audio.narrative
	result.FacialNarrative = facial.narrative
	result.Narrative = audio.narrative + facial.narrative
	result.VideoURL = videoURL

	s.persist(ctx, requestID, result, audio, facial, log)

	log.Info("emotion.predict.done",
		zap.String("sentiment", result.Sentiment.String()),
		zap.Bool("no_speech", result.NoSpeech),
		zap.Bool("audio_absent", audio.narrative == ""),
		zap.Bool("facial_absent", facial.narrative == ""),
		zap.Duration("elapsed", reqcontext.Elapsed(ctx)),
	)
	return result, nil
}

func (s *emotionService) transcode(ctx context.Context, in, out string) error {
	tctx, cancel := reqcontext.WithStage(ctx, "transcode", s.opts.TranscodeTimeout)
	defer cancel()

	err := s.transcoder.Transcode(tctx, in, out)
	if err == nil {
		return nil
	}
	if reqcontext.IsTimeout(err) || errors.Is(tctx.Err(), context.DeadlineExceeded) {
		return apperrors.ErrUpstreamTimeout("transcode", err)
	}
	return apperrors.ErrTranscodeFailed(err)
}

// analyzeAudio never fails: any extractor problem leaves the narrative absent
func (s *emotionService) analyzeAudio(ctx context.Context, path string, log *zap.Logger) audioAnalysis {
	actx, cancel := reqcontext.WithStage(ctx, "audio_features", s.opts.FeaturesTimeout)
	defer cancel()

	cols, err := s.features.AudioFeatures(actx, path)
	if err != nil {
		log.Warn("emotion.audio_features.absent", zap.Error(err))
		return audioAnalysis{}
	}
	f, err := entities.AcousticFeaturesFromColumns(cols)
	if err != nil {
		log.Warn("emotion.audio_features.absent", zap.Error(err))
		return audioAnalysis{}
	}
	return audioAnalysis{narrative: DescribeAcoustics(f), features: &f}
}

// analyzeFace never fails: no face or a broken video leaves the narrative absent
func (s *emotionService) analyzeFace(ctx context.Context, path string, log *zap.Logger) facialAnalysis {
	vctx, cancel := reqcontext.WithStage(ctx, "facial_features", s.opts.FeaturesTimeout)
	defer cancel()

	frames, err := s.features.ActionUnits(vctx, path)
	if err != nil {
		log.Warn("emotion.facial_features.absent", zap.Error(err))
		return facialAnalysis{}
	}
	mean, err := entities.MeanActionUnits(frames)
	if err != nil {
		log.Warn("emotion.facial_features.absent", zap.Error(err))
		return facialAnalysis{}
	}
	return facialAnalysis{
		narrative: DescribeActionUnits(mean, s.opts.AUThreshold),
		active:    ActiveActionUnits(mean, s.opts.AUThreshold),
	}
}

func (s *emotionService) classify(ctx context.Context, input string) (entities.Sentiment, error) {
	cctx, cancel := reqcontext.WithStage(ctx, "classify", s.opts.ClassifyTimeout)
	defer cancel()

	scores, err := s.classifier.Classify(cctx, input)
	if err != nil {
		return "", ucerrors.FromUpstream("classify", err, apperrors.ErrClassificationFailed)
	}
	sentiment, err := entities.SentimentFromScores(scores)
	if err != nil {
		return "", apperrors.ErrClassificationFailed(err)
	}
	return sentiment, nil
}

// transcribe reports no speech as a flag, not an error
func (s *emotionService) transcribe(ctx context.Context, path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, apperrors.ErrInternal(fmt.Errorf("failed to read normalized media: %w", err))
	}

	tctx, cancel := reqcontext.WithStage(ctx, "transcribe", s.opts.TranscribeTimeout)
	defer cancel()

	text, err := s.transcriber.Transcribe(tctx, data, "video/mp4")
	if errors.Is(err, ai.ErrNoSpeech) {
		return "", true, nil
	}
	if err != nil {
		return "", false, ucerrors.FromUpstream("transcribe", err, apperrors.ErrTranscriptionFailed)
	}
	return text, false, nil
}

// archive is best effort: failures are logged and yield an empty URL
func (s *emotionService) archive(ctx context.Context, requestID string, upload Upload, path string, log *zap.Logger) string {
	id := requestID
	if id == "" {
		id = "upload"
	}
	key := storage.UploadObjectKey(time.Now(), id, upload.Filename)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.archiver.ArchiveFile(ctx, key, path, contentType)
	if err != nil {
		log.Warn("emotion.archive.failed", zap.String("object", key), zap.Error(err))
		return ""
	}
	return url
}

// persist is best effort: the prediction has already been computed
func (s *emotionService) persist(ctx context.Context, requestID string, r *Result, audio audioAnalysis, facial facialAnalysis, log *zap.Logger) {
	if s.predictions == nil {
		return
	}

	p := entities.NewPrediction(requestID, r.Sentiment)
	p.Transcription = r.Transcription
	p.NoSpeech = r.NoSpeech
	p.Narrative = r.Narrative
	p.MediaURL = r.VideoURL
	p.Acoustics = datatypes.NewJSONType(audio.features)
	p.ActionUnits = datatypes.NewJSONSlice(facial.active)

	if err := s.predictions.Create(ctx, p); err != nil {
		log.Warn("emotion.history.save_failed", zap.Error(err))
	}
}

// History lists the most recent predictions
func (s *emotionService) History(ctx context.Context, limit int) ([]*entities.Prediction, error) {
	if s.predictions == nil {
		return nil, apperrors.ErrNotConfigured("Prediction history")
	}
	items, err := s.predictions.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list predictions", err)
	}
	return items, nil
}
