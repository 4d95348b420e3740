package scenes

import "context"

// Summary is the lightweight list-row projection of a scene.
type Summary struct {
	ID          string `json:"id"`
	Number      string `json:"scene_number"`
	Header      string `json:"scene_header"`
	BodyPreview string `json:"body_preview"`
	BodyLength  int    `json:"body_length"`
}

// Detail is the full field set for one scene.
type Detail struct {
	ID     string `json:"id"`
	Number string `json:"scene_number"`
	Header string `json:"scene_header"`
	Body   string `json:"body"`
}

// NavContext carries the sequential-navigation pointers returned alongside a
// detail fetch.
type NavContext struct {
	PreviousID string `json:"previous_scene"`
	NextID     string `json:"next_scene"`
	Position   int    `json:"position"`
	Total      int    `json:"total"`
}

// ElementKey is one entry of the breakdown vocabulary: a production-element
// category and the values previously seen for it anywhere in the screenplay.
type ElementKey struct {
	Key             string   `json:"key"`
	AvailableValues []string `json:"available_values"`
}

// Element is one production-element category within a scene's breakdown.
type Element struct {
	Key             string   `json:"key"`
	Values          []string `json:"values"`
	AvailableValues []string `json:"available_values"`
}

// Breakdown is the set of production elements for one scene.
type Breakdown struct {
	SceneNumber  string    `json:"scene_number"`
	Elements     []Element `json:"elements"`
	HasBreakdown bool      `json:"has_breakdown"`
}

// ListResult bundles one page of scene summaries.
type ListResult struct {
	Scenes []Summary
	Total  int
}

// Direction selects a sequential-navigation neighbor.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// Service is the backend surface the orchestrator consumes. Implemented by
// services/screenplay.Client; tests substitute fakes.
type Service interface {
	ListScenes(ctx context.Context, screenplayID string, page, limit, previewLength int) (*ListResult, error)
	SceneDetail(ctx context.Context, screenplayID, sceneID string) (*Detail, *NavContext, error)
	ElementKeys(ctx context.Context, screenplayID string) ([]ElementKey, error)
	SceneBreakdown(ctx context.Context, screenplayID, sceneNumber string) (*Breakdown, error)
	GenerateBreakdown(ctx context.Context, screenplayID, sceneNumber string, overwrite bool) (map[string][]string, error)
	UpsertBreakdown(ctx context.Context, screenplayID, sceneNumber string, elements []Element) error
}
