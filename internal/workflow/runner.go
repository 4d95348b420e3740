package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mythus/internal/logging"
	"mythus/internal/production"
	"mythus/internal/scenes"
	"mythus/internal/services"
	"mythus/internal/services/screenplay"
)

const component = "workflow"

// Service is the backend surface the wizard consumes.
type Service interface {
	CreateScreenplay(ctx context.Context, title string) (*screenplay.Screenplay, error)
	SaveProductionInfo(ctx context.Context, screenplayID string, info production.Info) error
	UploadScript(ctx context.Context, screenplayID, filename string, content io.Reader) error
	ProcessScript(ctx context.Context, screenplayID string) error
	ScriptStatus(ctx context.Context, screenplayID string) (screenplay.SummarizationStatus, string, error)
	ListScenes(ctx context.Context, screenplayID string, page, limit, previewLength int) (*scenes.ListResult, error)
}

// Options configures a Runner.
type Options struct {
	Service Service
	Logger  *slog.Logger

	// PollInterval is the wait between summarization status checks.
	PollInterval time.Duration
	// PollMaxAttempts bounds the status poll; exhaustion fails the step.
	PollMaxAttempts int
}

const (
	defaultPollInterval    = 3 * time.Second
	defaultPollMaxAttempts = 100
)

// Runner walks a screenplay through the wizard steps.
type Runner struct {
	svc          Service
	logger       *slog.Logger
	pollInterval time.Duration
	pollAttempts int

	mu           sync.Mutex
	step         Step
	screenplayID string
	title        string
	sceneCount   int
	fieldErrors  map[string]string
	successes    map[string]string
}

// NewRunner validates options and builds a wizard runner positioned at the
// details step.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Service == nil {
		return nil, errors.New("workflow: service is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := opts.PollMaxAttempts
	if attempts <= 0 {
		attempts = defaultPollMaxAttempts
	}
	return &Runner{
		svc:          opts.Service,
		logger:       logger.With(logging.FieldComponent, component),
		pollInterval: interval,
		pollAttempts: attempts,
		step:         StepDetails,
		fieldErrors:  make(map[string]string),
		successes:    make(map[string]string),
	}, nil
}

// CurrentStep reports the wizard position.
func (r *Runner) CurrentStep() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// ScreenplayID returns the backend identifier once the details step has run.
func (r *Runner) ScreenplayID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screenplayID
}

// SceneCount reports the extracted scene total after the review step loads.
func (r *Runner) SceneCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sceneCount
}

// FieldError returns the recorded error for a named field or step.
func (r *Runner) FieldError(field string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fieldErrors[field]
}

// Success returns the recorded confirmation message for a named field or step.
func (r *Runner) Success(field string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.successes[field]
}

// Back moves the wizard one step toward the start. Processing cannot be
// re-entered once passed; backing out of review returns to upload.
func (r *Runner) Back() Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.step.Previous()
	if previous == StepProcessing {
		previous = previous.Previous()
	}
	r.step = previous
	return r.step
}

// SubmitDetails validates the production form, creates the screenplay, and
// stores its production info. On success the wizard advances to the upload
// step.
func (r *Runner) SubmitDetails(ctx context.Context, title string, info production.Info) error {
	title = strings.TrimSpace(title)

	r.mu.Lock()
	delete(r.fieldErrors, "details")
	delete(r.fieldErrors, "title")
	if title == "" {
		r.fieldErrors["title"] = "title is required"
		r.mu.Unlock()
		return services.Wrap(services.ErrValidation, component, "submit details", "title is required", nil)
	}
	r.mu.Unlock()

	created, err := r.svc.CreateScreenplay(ctx, title)
	if err != nil {
		r.recordError("details", err)
		return err
	}

	ctx = services.WithScreenplayID(ctx, created.ID)
	if err := r.svc.SaveProductionInfo(ctx, created.ID, info); err != nil {
		r.recordError("details", err)
		return err
	}

	r.mu.Lock()
	r.screenplayID = created.ID
	r.title = created.Title
	r.successes["details"] = fmt.Sprintf("screenplay %q created", created.Title)
	r.step = StepUpload
	r.mu.Unlock()
	logging.WithContext(ctx, r.logger).Info("details step complete", logging.FieldStep, string(StepUpload))
	return nil
}

// Upload sends the script file and starts backend processing. On success the
// wizard advances to the processing step.
func (r *Runner) Upload(ctx context.Context, filename string, content io.Reader) error {
	r.mu.Lock()
	if r.step != StepUpload {
		step := r.step
		r.mu.Unlock()
		return services.Wrap(services.ErrValidation, component, "upload", fmt.Sprintf("wizard is at the %s step", step), nil)
	}
	id := r.screenplayID
	delete(r.fieldErrors, "upload")
	r.mu.Unlock()

	ctx = services.WithScreenplayID(ctx, id)
	if err := r.svc.UploadScript(ctx, id, filename, content); err != nil {
		r.recordError("upload", err)
		return err
	}
	if err := r.svc.ProcessScript(ctx, id); err != nil {
		r.recordError("upload", err)
		return err
	}

	r.mu.Lock()
	r.successes["upload"] = "script uploaded, processing started"
	r.step = StepProcessing
	r.mu.Unlock()
	logging.WithContext(ctx, r.logger).Info("upload step complete", logging.FieldStep, string(StepProcessing))
	return nil
}

// AwaitProcessing polls summarization status until the backend reports
// completion, the backend reports failure, the attempt budget is exhausted,
// or the context is cancelled. On completion the wizard advances to review
// and the scene count is loaded.
func (r *Runner) AwaitProcessing(ctx context.Context) error {
	r.mu.Lock()
	if r.step != StepProcessing {
		step := r.step
		r.mu.Unlock()
		return services.Wrap(services.ErrValidation, component, "await processing", fmt.Sprintf("wizard is at the %s step", step), nil)
	}
	id := r.screenplayID
	delete(r.fieldErrors, "processing")
	r.mu.Unlock()

	ctx = services.WithScreenplayID(ctx, id)
	log := logging.WithContext(ctx, r.logger)

	for attempt := 1; attempt <= r.pollAttempts; attempt++ {
		status, message, err := r.svc.ScriptStatus(ctx, id)
		if err != nil {
			if !services.IsRetryable(err) {
				r.recordError("processing", err)
				return err
			}
			log.Warn("status check failed, retrying", "attempt", attempt, "error", err)
		} else {
			switch status {
			case screenplay.StatusCompleted:
				return r.finishProcessing(ctx)
			case screenplay.StatusFailed:
				failure := services.Wrap(services.ErrTransient, component, "await processing", orDefault(message, "backend reported processing failure"), nil)
				r.recordError("processing", failure)
				return failure
			case screenplay.StatusPending, screenplay.StatusProcessing:
				// Keep polling.
			default:
				log.Warn("unknown summarization status", "status", string(status))
			}
		}

		if attempt == r.pollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			err := services.Wrap(services.ErrTimeout, component, "await processing", "cancelled while waiting", ctx.Err())
			r.recordError("processing", err)
			return err
		case <-time.After(r.pollInterval):
		}
	}

	err := services.Wrap(services.ErrTimeout, component, "await processing",
		fmt.Sprintf("summarization did not finish within %d checks", r.pollAttempts), nil)
	r.recordError("processing", err)
	return err
}

func (r *Runner) finishProcessing(ctx context.Context) error {
	r.mu.Lock()
	id := r.screenplayID
	r.mu.Unlock()

	count := 0
	if result, err := r.svc.ListScenes(ctx, id, 1, 1, 0); err == nil && result != nil {
		count = result.Total
	} else if err != nil {
		logging.WithContext(ctx, r.logger).Warn("scene count fetch failed after processing", "error", err)
	}

	r.mu.Lock()
	r.sceneCount = count
	r.successes["processing"] = "scene extraction complete"
	r.step = StepReview
	r.mu.Unlock()
	logging.WithContext(ctx, r.logger).Info("processing step complete",
		logging.FieldStep, string(StepReview), "scene_count", count)
	return nil
}

// CompleteReview finishes the wizard.
func (r *Runner) CompleteReview() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.step != StepReview {
		return services.Wrap(services.ErrValidation, component, "complete review", fmt.Sprintf("wizard is at the %s step", r.step), nil)
	}
	r.successes["review"] = fmt.Sprintf("screenplay %q is ready", r.title)
	r.step = StepComplete
	return nil
}

func (r *Runner) recordError(field string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fieldErrors[field] = err.Error()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
