package workflow

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"mythus/internal/production"
	"mythus/internal/scenes"
	"mythus/internal/services"
	"mythus/internal/services/screenplay"
)

type fakeBackend struct {
	createFn  func(ctx context.Context, title string) (*screenplay.Screenplay, error)
	saveFn    func(ctx context.Context, screenplayID string, info production.Info) error
	uploadFn  func(ctx context.Context, screenplayID, filename string, content io.Reader) error
	processFn func(ctx context.Context, screenplayID string) error
	statusFn  func(ctx context.Context, screenplayID string) (screenplay.SummarizationStatus, string, error)
	listFn    func(ctx context.Context, screenplayID string, page, limit, previewLength int) (*scenes.ListResult, error)

	statusCalls int
}

func (f *fakeBackend) CreateScreenplay(ctx context.Context, title string) (*screenplay.Screenplay, error) {
	if f.createFn == nil {
		return &screenplay.Screenplay{ID: "sp-1", Title: title}, nil
	}
	return f.createFn(ctx, title)
}

func (f *fakeBackend) SaveProductionInfo(ctx context.Context, screenplayID string, info production.Info) error {
	if f.saveFn == nil {
		return nil
	}
	return f.saveFn(ctx, screenplayID, info)
}

func (f *fakeBackend) UploadScript(ctx context.Context, screenplayID, filename string, content io.Reader) error {
	if f.uploadFn == nil {
		return nil
	}
	return f.uploadFn(ctx, screenplayID, filename, content)
}

func (f *fakeBackend) ProcessScript(ctx context.Context, screenplayID string) error {
	if f.processFn == nil {
		return nil
	}
	return f.processFn(ctx, screenplayID)
}

func (f *fakeBackend) ScriptStatus(ctx context.Context, screenplayID string) (screenplay.SummarizationStatus, string, error) {
	f.statusCalls++
	if f.statusFn == nil {
		return screenplay.StatusCompleted, "", nil
	}
	return f.statusFn(ctx, screenplayID)
}

func (f *fakeBackend) ListScenes(ctx context.Context, screenplayID string, page, limit, previewLength int) (*scenes.ListResult, error) {
	if f.listFn == nil {
		return &scenes.ListResult{Total: 0}, nil
	}
	return f.listFn(ctx, screenplayID, page, limit, previewLength)
}

func newTestRunner(t *testing.T, svc Service) *Runner {
	t.Helper()
	r, err := NewRunner(Options{
		Service:         svc,
		PollInterval:    time.Millisecond,
		PollMaxAttempts: 5,
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func advanceToProcessing(t *testing.T, r *Runner) {
	t.Helper()
	if err := r.SubmitDetails(context.Background(), "Night Shoot", production.Info{}); err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}
	if err := r.Upload(context.Background(), "draft.pdf", strings.NewReader("pdf")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
}

func TestStepOrdering(t *testing.T) {
	if StepDetails.Next() != StepUpload || StepComplete.Next() != StepComplete {
		t.Fatal("unexpected step successor")
	}
	if StepUpload.Previous() != StepDetails || StepDetails.Previous() != StepDetails {
		t.Fatal("unexpected step predecessor")
	}
	if Step("bogus").Index() != -1 {
		t.Fatal("unknown step should have index -1")
	}
}

func TestSubmitDetailsRequiresTitle(t *testing.T) {
	r := newTestRunner(t, &fakeBackend{})

	err := r.SubmitDetails(context.Background(), "   ", production.Info{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if r.FieldError("title") == "" {
		t.Fatal("title field error should be recorded")
	}
	if r.CurrentStep() != StepDetails {
		t.Fatalf("wizard should stay on details, at %q", r.CurrentStep())
	}
}

func TestSubmitDetailsCreatesAndAdvances(t *testing.T) {
	var savedID string
	var savedInfo production.Info
	svc := &fakeBackend{
		saveFn: func(_ context.Context, screenplayID string, info production.Info) error {
			savedID = screenplayID
			savedInfo = info
			return nil
		},
	}
	r := newTestRunner(t, svc)

	info := production.Info{DirectorName: "Ada Lovelace"}
	if err := r.SubmitDetails(context.Background(), "Night Shoot", info); err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}
	if savedID != "sp-1" || savedInfo.DirectorName != "Ada Lovelace" {
		t.Fatalf("production info not forwarded: id=%q info=%+v", savedID, savedInfo)
	}
	if r.CurrentStep() != StepUpload || r.ScreenplayID() != "sp-1" {
		t.Fatalf("unexpected state: step=%q id=%q", r.CurrentStep(), r.ScreenplayID())
	}
	if r.Success("details") == "" {
		t.Fatal("details success message should be recorded")
	}
}

func TestSubmitDetailsBackendFailureRecorded(t *testing.T) {
	svc := &fakeBackend{
		createFn: func(_ context.Context, _ string) (*screenplay.Screenplay, error) {
			return nil, errors.New("backend down")
		},
	}
	r := newTestRunner(t, svc)

	if err := r.SubmitDetails(context.Background(), "Night Shoot", production.Info{}); err == nil {
		t.Fatal("expected create failure")
	}
	if r.FieldError("details") == "" {
		t.Fatal("details step error should be recorded")
	}
	if r.CurrentStep() != StepDetails {
		t.Fatal("failed create must not advance the wizard")
	}
}

func TestUploadOutOfOrderRejected(t *testing.T) {
	r := newTestRunner(t, &fakeBackend{})

	err := r.Upload(context.Background(), "draft.pdf", strings.NewReader("pdf"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error before details, got %v", err)
	}
}

func TestUploadAdvancesToProcessing(t *testing.T) {
	processed := false
	svc := &fakeBackend{
		processFn: func(_ context.Context, _ string) error {
			processed = true
			return nil
		},
	}
	r := newTestRunner(t, svc)
	advanceToProcessing(t, r)

	if !processed {
		t.Fatal("upload should kick off processing")
	}
	if r.CurrentStep() != StepProcessing {
		t.Fatalf("unexpected step %q", r.CurrentStep())
	}
}

func TestAwaitProcessingCompletesAndLoadsSceneCount(t *testing.T) {
	svc := &fakeBackend{
		statusFn: func(_ context.Context, _ string) (screenplay.SummarizationStatus, string, error) {
			return screenplay.StatusCompleted, "", nil
		},
		listFn: func(_ context.Context, _ string, _, _, _ int) (*scenes.ListResult, error) {
			return &scenes.ListResult{Total: 41}, nil
		},
	}
	r := newTestRunner(t, svc)
	advanceToProcessing(t, r)

	if err := r.AwaitProcessing(context.Background()); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	if r.CurrentStep() != StepReview || r.SceneCount() != 41 {
		t.Fatalf("unexpected state: step=%q count=%d", r.CurrentStep(), r.SceneCount())
	}
}

func TestAwaitProcessingPollsThroughPendingStates(t *testing.T) {
	sequence := []screenplay.SummarizationStatus{
		screenplay.StatusPending,
		screenplay.StatusProcessing,
		screenplay.StatusCompleted,
	}
	call := 0
	svc := &fakeBackend{
		statusFn: func(_ context.Context, _ string) (screenplay.SummarizationStatus, string, error) {
			status := sequence[min(call, len(sequence)-1)]
			call++
			return status, "", nil
		},
	}
	r := newTestRunner(t, svc)
	advanceToProcessing(t, r)

	if err := r.AwaitProcessing(context.Background()); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	if call != 3 {
		t.Fatalf("expected 3 status checks, got %d", call)
	}
}

func TestAwaitProcessingExhaustionIsTimeout(t *testing.T) {
	svc := &fakeBackend{
		statusFn: func(_ context.Context, _ string) (screenplay.SummarizationStatus, string, error) {
			return screenplay.StatusProcessing, "", nil
		},
	}
	r := newTestRunner(t, svc)
	advanceToProcessing(t, r)

	err := r.AwaitProcessing(context.Background())
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
	if svc.statusCalls != 5 {
		t.Fatalf("expected 5 attempts, got %d", svc.statusCalls)
	}
	if r.FieldError("processing") == "" {
		t.Fatal("processing step error should be recorded")
	}
	if r.CurrentStep() != StepProcessing {
		t.Fatal("exhaustion must not advance the wizard")
	}
}

func TestAwaitProcessingBackendFailureStops(t *testing.T) {
	svc := &fakeBackend{
		statusFn: func(_ context.Context, _ string) (screenplay.SummarizationStatus, string, error) {
			return screenplay.StatusFailed, "could not parse script", nil
		},
	}
	r := newTestRunner(t, svc)
	advanceToProcessing(t, r)

	err := r.AwaitProcessing(context.Background())
	if err == nil || !strings.Contains(err.Error(), "could not parse script") {
		t.Fatalf("expected backend failure message, got %v", err)
	}
	if svc.statusCalls != 1 {
		t.Fatalf("failed status should stop polling, got %d calls", svc.statusCalls)
	}
}

func TestAwaitProcessingCancellation(t *testing.T) {
	svc := &fakeBackend{
		statusFn: func(_ context.Context, _ string) (screenplay.SummarizationStatus, string, error) {
			return screenplay.StatusProcessing, "", nil
		},
	}
	r, err := NewRunner(Options{Service: svc, PollInterval: time.Hour, PollMaxAttempts: 10})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	advanceToProcessing(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.AwaitProcessing(ctx); !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout-classified cancellation, got %v", err)
	}
}

func TestCompleteReviewAndBack(t *testing.T) {
	r := newTestRunner(t, &fakeBackend{})
	advanceToProcessing(t, r)
	if err := r.AwaitProcessing(context.Background()); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}

	// Backing out of review skips the one-way processing step.
	if got := r.Back(); got != StepUpload {
		t.Fatalf("expected back to upload, got %q", got)
	}
	if err := r.Upload(context.Background(), "draft.pdf", strings.NewReader("pdf")); err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if err := r.AwaitProcessing(context.Background()); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}

	if err := r.CompleteReview(); err != nil {
		t.Fatalf("CompleteReview: %v", err)
	}
	if r.CurrentStep() != StepComplete {
		t.Fatalf("unexpected step %q", r.CurrentStep())
	}
	if err := r.CompleteReview(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("double completion should be rejected, got %v", err)
	}
}
