package screenplay

import (
	"context"
	"net/http"

	"mythus/internal/scenes"
	"mythus/internal/services"
)

type elementKeysResponse struct {
	ElementKeys []scenes.ElementKey `json:"element_keys"`
}

type breakdownResponse struct {
	SceneNumber  string           `json:"scene_number"`
	Elements     []scenes.Element `json:"elements"`
	HasBreakdown bool             `json:"has_breakdown"`
}

type generateResponse struct {
	Elements map[string][]string `json:"elements"`
}

type upsertRequest struct {
	Elements []scenes.Element `json:"elements"`
}

// ElementKeys fetches the screenplay-wide breakdown vocabulary.
func (c *Client) ElementKeys(ctx context.Context, screenplayID string) ([]scenes.ElementKey, error) {
	const operation = "element keys"
	if screenplayID == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}

	var resp elementKeysResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "element-keys")
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ElementKeys, nil
}

// SceneBreakdown fetches the stored production elements for one scene.
func (c *Client) SceneBreakdown(ctx context.Context, screenplayID, sceneNumber string) (*scenes.Breakdown, error) {
	const operation = "scene breakdown"
	if screenplayID == "" || sceneNumber == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene number are required", nil)
	}

	var resp breakdownResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scene-elements", sceneNumber)
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &scenes.Breakdown{
		SceneNumber:  resp.SceneNumber,
		Elements:     resp.Elements,
		HasBreakdown: resp.HasBreakdown,
	}, nil
}

// GenerateBreakdown runs the backend extraction for one scene and returns the
// proposed values keyed by element category.
func (c *Client) GenerateBreakdown(ctx context.Context, screenplayID, sceneNumber string, overwrite bool) (map[string][]string, error) {
	const operation = "generate breakdown"
	if screenplayID == "" || sceneNumber == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene number are required", nil)
	}

	endpoint := c.endpoint("api", "screenplays", screenplayID, "scene-elements", sceneNumber, "generate")
	if overwrite {
		endpoint += "?overwrite=true"
	}
	var resp generateResponse
	if err := c.doJSON(ctx, http.MethodPost, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}

// UpsertBreakdown merge-writes element values for one scene.
func (c *Client) UpsertBreakdown(ctx context.Context, screenplayID, sceneNumber string, elements []scenes.Element) error {
	const operation = "upsert breakdown"
	if screenplayID == "" || sceneNumber == "" {
		return services.Wrap(services.ErrValidation, component, operation, "screenplay id and scene number are required", nil)
	}
	endpoint := c.endpoint("api", "screenplays", screenplayID, "scene-elements", sceneNumber)
	return c.doJSON(ctx, http.MethodPut, operation, endpoint, upsertRequest{Elements: elements}, nil)
}
