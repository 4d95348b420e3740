package screenplay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"mythus/internal/production"
	"mythus/internal/services"
)

// Screenplay is the backend's screenplay record.
type Screenplay struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// SummarizationStatus is the processing state of an uploaded script.
type SummarizationStatus string

const (
	StatusPending    SummarizationStatus = "pending"
	StatusProcessing SummarizationStatus = "processing"
	StatusCompleted  SummarizationStatus = "completed"
	StatusFailed     SummarizationStatus = "failed"
)

type screenplayResponse struct {
	Screenplay Screenplay `json:"screenplay"`
}

type screenplayListResponse struct {
	Screenplays []Screenplay `json:"screenplays"`
}

type productionInfoResponse struct {
	ProductionInfo production.Info `json:"production_info"`
}

type statusResponse struct {
	Status  SummarizationStatus `json:"status"`
	Message string              `json:"message"`
}

// CreateScreenplay registers a new screenplay and returns the stored record.
func (c *Client) CreateScreenplay(ctx context.Context, title string) (*Screenplay, error) {
	const operation = "create screenplay"
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "title is required", nil)
	}

	var resp screenplayResponse
	endpoint := c.endpoint("api", "screenplays")
	body := map[string]string{"title": title}
	if err := c.doJSON(ctx, http.MethodPost, operation, endpoint, body, &resp); err != nil {
		return nil, err
	}
	if resp.Screenplay.ID == "" {
		return nil, services.Wrap(services.ErrTransient, component, operation, "backend returned no screenplay id", nil)
	}
	return &resp.Screenplay, nil
}

// ListScreenplays fetches every screenplay visible to the token.
func (c *Client) ListScreenplays(ctx context.Context) ([]Screenplay, error) {
	const operation = "list screenplays"
	var resp screenplayListResponse
	endpoint := c.endpoint("api", "screenplays")
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Screenplays, nil
}

// ProductionInfo fetches the production header fields for a screenplay.
func (c *Client) ProductionInfo(ctx context.Context, screenplayID string) (*production.Info, error) {
	const operation = "production info"
	if screenplayID == "" {
		return nil, services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}

	var resp productionInfoResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "production-info")
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.ProductionInfo, nil
}

// SaveProductionInfo stores production header fields, normalizing name casing
// before the write.
func (c *Client) SaveProductionInfo(ctx context.Context, screenplayID string, info production.Info) error {
	const operation = "save production info"
	if screenplayID == "" {
		return services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}
	info = info.Normalize()
	endpoint := c.endpoint("api", "screenplays", screenplayID, "production-info")
	return c.doJSON(ctx, http.MethodPut, operation, endpoint, info, nil)
}

// UploadScript sends the screenplay file as multipart form data.
func (c *Client) UploadScript(ctx context.Context, screenplayID, filename string, content io.Reader) error {
	const operation = "upload script"
	if screenplayID == "" {
		return services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}
	if content == nil {
		return services.Wrap(services.ErrValidation, component, operation, "script content is required", nil)
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." {
		name = "script.pdf"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("script", name)
	if err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "build form", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "copy script content", err)
	}
	if err := writer.Close(); err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "finalize form", err)
	}

	endpoint := c.endpoint("api", "screenplays", screenplayID, "script")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return services.Wrap(services.ErrValidation, component, operation, "build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, component, operation, "request timed out", err)
		}
		return services.Wrap(services.ErrTransient, component, operation, "request failed", err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(operation, resp.StatusCode, payload)
	}
	return nil
}

// ProcessScript kicks off server-side scene extraction for an uploaded script.
func (c *Client) ProcessScript(ctx context.Context, screenplayID string) error {
	const operation = "process script"
	if screenplayID == "" {
		return services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}
	endpoint := c.endpoint("api", "screenplays", screenplayID, "process")
	return c.doJSON(ctx, http.MethodPost, operation, endpoint, nil, nil)
}

// ScriptStatus reports where summarization stands for a screenplay.
func (c *Client) ScriptStatus(ctx context.Context, screenplayID string) (SummarizationStatus, string, error) {
	const operation = "script status"
	if screenplayID == "" {
		return "", "", services.Wrap(services.ErrValidation, component, operation, "screenplay id is required", nil)
	}

	var resp statusResponse
	endpoint := c.endpoint("api", "screenplays", screenplayID, "summarization-status")
	if err := c.doJSON(ctx, http.MethodGet, operation, endpoint, nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Status, resp.Message, nil
}
