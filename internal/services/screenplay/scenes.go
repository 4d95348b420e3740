package screenplay

import (
	"context"
	"net/http"
	"strconv"

	"mythus/internal/scenes"
	"mythus/internal/services"
)

// SceneInput carries the writable scene fields for create/update calls.
type SceneInput struct {
	Number string `json:"scene_number"`
	Header string `json:"scene_header"`
	Body   string `json:"body"`
}

type sceneListResponse struct {
	Scenes      []scenes.Summary `json:"scenes"`
	TotalScenes int              `json:"total_scenes"`
}

type sceneDetailResponse struct {
	Scene      scenes.Detail      `json:"scene"`
	Navigation *scenes.NavContext `json:"navigation"`
}

// ListScenes fetches one page of scene summaries.
func (c *Client) ListScenes(ctx context.Context, screenplayID string, page, limit, previewLength int) (*scenes.ListResult, error) {
	const operation = "list scenes"
	if screenplayID == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}

	endpoint := c.endpoint("api", "screenplays", screenplayID, "scenes") +
		"?page=" + strconv.Itoa(page) +
		"&limit=" + strconv.Itoa(limit) +
		"&preview_length=" + strconv.Itoa(previewLength)

	var resp sceneListResponse
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Scenes == nil {
		resp.Scenes = []scenes.Summary{}
	}
	return &scenes.ListResult{Scenes: resp.Scenes, Total: resp.TotalScenes}, nil
}

// SceneDetail fetches the full scene plus its sequential-navigation context.
func (c *Client) SceneDetail(ctx context.Context, screenplayID, sceneID string) (*scenes.Detail, *scenes.NavContext, error) {
	const operation = "scene detail"
	if screenplayID == "" || sceneID == "" {
		return nil, nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene id are required", nil)
	}

	var resp sceneDetailResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scenes", sceneID)
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.Scene, resp.Navigation, nil
}

// AddScene creates a scene and returns the stored record.
func (c *Client) AddScene(ctx context.Context, screenplayID string, input SceneInput) (*scenes.Detail, error) {
	const operation = "add scene"
	if screenplayID == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}
	if input.Header == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "scene header is required", nil)
	}

	var resp sceneDetailResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scenes")
	if err := c.doJSON(ctx, http.MethodPost, operation, endpoint, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Scene, nil
}

// UpdateScene replaces a scene's writable fields.
func (c *Client) UpdateScene(ctx context.Context, screenplayID, sceneID string, input SceneInput) (*scenes.Detail, error) {
	const operation = "update scene"
	if screenplayID == "" || sceneID == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene id are required", nil)
	}

	var resp sceneDetailResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scenes", sceneID)
	if err := c.doJSON(ctx, http.MethodPut, operation, endpoint, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Scene, nil
}

// DeleteScene removes a scene.
func (c *Client) DeleteScene(ctx context.Context, screenplayID, sceneID string) error {
	const operation = "delete scene"
	if screenplayID == "" || sceneID == "" {
		return services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene id are required", nil)
	}
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scenes", sceneID)
	return c.doJSON(ctx, http.MethodDelete, operation, endpoint, nil, nil)
}
