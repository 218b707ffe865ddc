// Package pipeline orchestrates a download end to end: validate the request,
// fetch metadata, select a format, then hand the transfer to the provider.
package pipeline

import (
	"context"
	"errors"
	"time"

	"ytgrab/internal/dlerr"
	"ytgrab/internal/model"
	"ytgrab/internal/progress"
	"ytgrab/internal/provider"
	"ytgrab/internal/selector"
)

// Recorder persists completed downloads. Recording is best effort; a
// recorder failure never fails the download that produced the entry.
type Recorder interface {
	Record(ctx context.Context, video model.VideoInfo, res model.DownloadResult, url string) error
}

// Service runs download requests against a configured provider.
type Service struct {
	prov     provider.Port
	retry    RetryPolicy
	reporter progress.Reporter
	recorder Recorder
	jobID    string
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Service.
type Option func(*Service)

// WithProvider sets the backend used to fetch metadata and download.
func WithProvider(p provider.Port) Option {
	return func(s *Service) { s.prov = p }
}

// WithRetryPolicy overrides the metadata retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) { s.retry = p }
}

// WithReporter sets the progress sink. Stage transitions driven by the
// service itself (metadata, completed, error) are emitted here; byte-level
// progress comes from the provider.
func WithReporter(r progress.Reporter) Option {
	return func(s *Service) { s.reporter = r }
}

// WithRecorder sets the history sink for completed downloads.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithJobID tags progress updates emitted by the service.
func WithJobID(id string) Option {
	return func(s *Service) { s.jobID = id }
}

// WithSleep replaces the retry delay function. Tests use this to avoid
// real waits.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Service) { s.sleep = fn }
}

// New builds a Service. A provider must be supplied via WithProvider.
func New(opts ...Option) *Service {
	s := &Service{
		retry: DefaultRetryPolicy(),
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the full pipeline for one request. Failures carry a taxonomy
// kind except cancellation, which surfaces as the context's error.
func (s *Service) Run(ctx context.Context, req model.DownloadRequest) (model.DownloadResult, error) {
	if err := req.Validate(); err != nil {
		return model.DownloadResult{}, s.fail(err)
	}

	s.emit(progress.StageMetadata, "fetching metadata")
	video, err := s.FetchMetadata(ctx, req.URL)
	if err != nil {
		return model.DownloadResult{}, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return model.DownloadResult{}, err
	}

	format, err := selector.Select(video.Formats, req.Constraint)
	if err != nil {
		return model.DownloadResult{}, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return model.DownloadResult{}, err
	}

	return s.DownloadFormat(ctx, req, video, format)
}

// RunFormatID is Run with selection bypassed: the caller names the exact
// format ID to download.
func (s *Service) RunFormatID(ctx context.Context, req model.DownloadRequest, formatID string) (model.DownloadResult, error) {
	if err := req.Validate(); err != nil {
		return model.DownloadResult{}, s.fail(err)
	}

	s.emit(progress.StageMetadata, "fetching metadata")
	video, err := s.FetchMetadata(ctx, req.URL)
	if err != nil {
		return model.DownloadResult{}, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return model.DownloadResult{}, err
	}

	for _, f := range video.Formats {
		if f.ID == formatID {
			return s.DownloadFormat(ctx, req, video, f)
		}
	}
	return model.DownloadResult{}, s.fail(dlerr.Newf(dlerr.KindFormatNotFound,
		"no format with ID %q", formatID).
		WithHint("list available formats with the info command"))
}

// FetchMetadata resolves a URL, retrying transient network failures with
// backoff up to the configured bound. Other failure kinds return at once.
func (s *Service) FetchMetadata(ctx context.Context, url string) (model.VideoInfo, error) {
	attempts := s.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if d := s.retry.Delay(attempt); d > 0 {
			if err := s.sleep(ctx, d); err != nil {
				return model.VideoInfo{}, err
			}
		}

		video, err := s.prov.FetchMetadata(ctx, url)
		if err == nil {
			return video, nil
		}
		err = dlerr.From(err)
		if !dlerr.IsKind(err, dlerr.KindNetwork) {
			return model.VideoInfo{}, err
		}
		lastErr = err
	}
	return model.VideoInfo{}, lastErr
}

// DownloadFormat transfers an already-selected format. The download itself
// is attempted exactly once.
func (s *Service) DownloadFormat(ctx context.Context, req model.DownloadRequest, video model.VideoInfo, format model.FormatInfo) (model.DownloadResult, error) {
	if err := ctx.Err(); err != nil {
		return model.DownloadResult{}, err
	}

	res, err := s.prov.Download(ctx, req, format)
	if err != nil {
		return model.DownloadResult{}, s.fail(dlerr.From(err))
	}

	if s.recorder != nil {
		// History failures are reported nowhere the pipeline can act on.
		_ = s.recorder.Record(ctx, video, res, req.URL)
	}

	if s.reporter != nil {
		s.reporter.Update(progress.Update{
			JobID:   s.jobID,
			Stage:   progress.StageCompleted,
			Percent: 100,
			Message: res.OutputPath,
		})
		s.reporter.Result(progress.Result{
			JobID:      s.jobID,
			OutputPath: res.OutputPath,
			Bytes:      res.Bytes,
		})
	}
	return res, nil
}

func (s *Service) emit(stage progress.Stage, msg string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Update(progress.Update{JobID: s.jobID, Stage: stage, Percent: -1, Message: msg})
}

func (s *Service) fail(err error) error {
	if s.reporter != nil && err != nil && ctxErr(err) == nil {
		s.reporter.Update(progress.Update{JobID: s.jobID, Stage: progress.StageError, Percent: -1, Message: err.Error()})
		s.reporter.Result(progress.Result{JobID: s.jobID, Err: err})
	}
	return err
}

func ctxErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
