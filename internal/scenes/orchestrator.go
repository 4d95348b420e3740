package scenes

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"mythus/internal/logging"
	"mythus/internal/services"
)

const (
	defaultPageLimit       = 500
	defaultPreviewLength   = 160
	defaultBulkParallelism = 4
)

// Options configures an Orchestrator.
type Options struct {
	Service      Service
	Logger       *slog.Logger
	ScreenplayID string

	// PageLimit is the list fetch size; large enough to act as "load all".
	PageLimit       int
	PreviewLength   int
	BulkParallelism int
}

// Orchestrator is the single writer of client-side scene state for one
// screenplay. All exported methods are safe for concurrent use.
type Orchestrator struct {
	svc          Service
	logger       *slog.Logger
	screenplayID string
	pageLimit    int
	previewLen   int
	bulkParallel int

	baseCtx context.Context
	stop    context.CancelFunc

	mu               sync.Mutex
	scenes           []Summary
	total            int
	selected         *Detail
	nav              *NavContext
	showDetailPanel  bool
	showSummaryPanel bool
	listErr          string
	detailErr        string
	breakdownErr     string
	breakdowns       map[string]Breakdown
	loading          map[string]struct{}
	updating         map[string]struct{}
	searchQuery      string
	typeFilter       string
	sortBy           SortKey
	sortOrder        SortOrder
}

// NewOrchestrator validates options and builds an orchestrator. Close must be
// called when the owner is done so in-flight requests are cancelled.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Service == nil {
		return nil, errors.New("scenes: service is required")
	}
	if opts.ScreenplayID == "" {
		return nil, errors.New("scenes: screenplay id is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	pageLimit := opts.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	previewLen := opts.PreviewLength
	if previewLen <= 0 {
		previewLen = defaultPreviewLength
	}
	parallel := opts.BulkParallelism
	if parallel <= 0 {
		parallel = defaultBulkParallelism
	}

	baseCtx, stop := context.WithCancel(context.Background())
	return &Orchestrator{
		svc:          opts.Service,
		logger:       logger.With(logging.FieldComponent, "scenes"),
		screenplayID: opts.ScreenplayID,
		pageLimit:    pageLimit,
		previewLen:   previewLen,
		bulkParallel: parallel,
		baseCtx:      baseCtx,
		stop:         stop,
		breakdowns:   make(map[string]Breakdown),
		loading:      make(map[string]struct{}),
		updating:     make(map[string]struct{}),
		sortBy:       SortByNumber,
		sortOrder:    OrderAscending,
	}, nil
}

// Close cancels every in-flight request started by this orchestrator.
func (o *Orchestrator) Close() {
	o.stop()
}

// opCtx stamps correlation metadata and ties the operation's lifetime to both
// the caller's context and the orchestrator's own.
func (o *Orchestrator) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithScreenplayID(ctx, o.screenplayID)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx, cancel := context.WithCancel(ctx)
	release := context.AfterFunc(o.baseCtx, cancel)
	return ctx, func() {
		release()
		cancel()
	}
}

func (o *Orchestrator) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, o.logger)
}

// LoadScenes fetches the scene list and replaces the summaries wholesale.
// On failure the previous list is kept and the list error slot is set.
func (o *Orchestrator) LoadScenes(ctx context.Context) error {
	ctx, done := o.opCtx(ctx)
	defer done()

	result, err := o.svc.ListScenes(ctx, o.screenplayID, 1, o.pageLimit, o.previewLen)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.listErr = err.Error()
		o.log(ctx).Warn("scene list fetch failed", "error", err)
		return err
	}
	o.scenes = result.Scenes
	o.total = result.Total
	o.listErr = ""
	return nil
}

// LoadSceneDetail opens the detail panel optimistically, then fetches the
// scene. Detail and summary panels are mutually exclusive. On failure the
// panel stays open with the error recorded; prior detail is cleared either
// way so the panel never shows a stale scene.
func (o *Orchestrator) LoadSceneDetail(ctx context.Context, sceneID string) error {
	ctx, done := o.opCtx(ctx)
	defer done()

	o.mu.Lock()
	o.showDetailPanel = true
	o.showSummaryPanel = false
	o.selected = nil
	o.nav = nil
	o.detailErr = ""
	o.mu.Unlock()

	detail, nav, err := o.svc.SceneDetail(ctx, o.screenplayID, sceneID)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.detailErr = err.Error()
		o.log(ctx).Warn("scene detail fetch failed", "scene_id", sceneID, "error", err)
		return err
	}
	o.selected = detail
	o.nav = nav
	return nil
}

// FetchSceneDetail is the side-channel read used by sheet autofill: it never
// touches panel state and absorbs failures, returning nil instead.
func (o *Orchestrator) FetchSceneDetail(ctx context.Context, sceneID string) *Detail {
	ctx, done := o.opCtx(ctx)
	defer done()

	detail, _, err := o.svc.SceneDetail(ctx, o.screenplayID, sceneID)
	if err != nil {
		o.log(ctx).Warn("side-channel detail fetch failed", "scene_id", sceneID, "error", err)
		return nil
	}
	return detail
}

// FetchSceneElements is the side-channel breakdown read: failures are
// swallowed and reported as a nil result.
func (o *Orchestrator) FetchSceneElements(ctx context.Context, sceneNumber string) []Element {
	ctx, done := o.opCtx(ctx)
	defer done()
	ctx = services.WithSceneNumber(ctx, sceneNumber)

	breakdown, err := o.svc.SceneBreakdown(ctx, o.screenplayID, sceneNumber)
	if err != nil || breakdown == nil {
		o.log(ctx).Warn("side-channel element fetch failed", "error", err)
		return nil
	}
	return breakdown.Elements
}

// NavigateScene loads the previous or next scene using the pointers from the
// last detail fetch. Without a neighbor in that direction it is a no-op.
func (o *Orchestrator) NavigateScene(ctx context.Context, direction Direction) error {
	o.mu.Lock()
	var target string
	if o.nav != nil {
		switch direction {
		case DirectionPrevious:
			target = o.nav.PreviousID
		case DirectionNext:
			target = o.nav.NextID
		}
	}
	o.mu.Unlock()

	if target == "" {
		return nil
	}
	return o.LoadSceneDetail(ctx, target)
}

// OpenSummaryPanel shows the summary panel and closes the detail panel.
func (o *Orchestrator) OpenSummaryPanel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.showSummaryPanel = true
	o.showDetailPanel = false
	o.selected = nil
	o.nav = nil
}

// ClosePanels hides both panels.
func (o *Orchestrator) ClosePanels() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.showSummaryPanel = false
	o.showDetailPanel = false
	o.selected = nil
	o.nav = nil
}

// SetSearchQuery updates the presentation filter.
func (o *Orchestrator) SetSearchQuery(query string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.searchQuery = query
}

// SetTypeFilter updates the INT/EXT presentation filter.
func (o *Orchestrator) SetTypeFilter(filter string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.typeFilter = filter
}

// SetSort updates the presentation sort key and order.
func (o *Orchestrator) SetSort(key SortKey, order SortOrder) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sortBy = key
	o.sortOrder = order
}
