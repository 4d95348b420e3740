package screenplay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mythus/internal/production"
	"mythus/internal/scenes"
	"mythus/internal/services"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{BaseURL: server.URL, APIToken: "token-1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := New(Config{BaseURL: "not a url"}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestListScenesSendsPaginationAndToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/screenplays/sp-1/scenes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected auth header %q", got)
		}
		query := r.URL.Query()
		if query.Get("page") != "2" || query.Get("limit") != "50" || query.Get("preview_length") != "80" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"scenes": []map[string]any{
				{"id": "s1", "scene_number": "1", "scene_header": "INT. LAB - DAY"},
			},
			"total_scenes": 41,
		})
	}))

	result, err := client.ListScenes(context.Background(), "sp-1", 2, 50, 80)
	if err != nil {
		t.Fatalf("ListScenes: %v", err)
	}
	if result.Total != 41 || len(result.Scenes) != 1 || result.Scenes[0].Number != "1" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestListScenesRequiresScreenplayID(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())
	if _, err := client.ListScenes(context.Background(), "", 1, 10, 80); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSceneDetailDecodesNavigation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/screenplays/sp-1/scenes/s7" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"scene": map[string]any{"id": "s7", "scene_number": "7", "body": "The lab hums."},
			"navigation": map[string]any{
				"previous_scene": "s6", "next_scene": "s8", "position": 7, "total": 41,
			},
		})
	}))

	detail, nav, err := client.SceneDetail(context.Background(), "sp-1", "s7")
	if err != nil {
		t.Fatalf("SceneDetail: %v", err)
	}
	if detail.ID != "s7" || detail.Body != "The lab hums." {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if nav == nil || nav.PreviousID != "s6" || nav.NextID != "s8" {
		t.Fatalf("unexpected navigation: %+v", nav)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		marker error
	}{
		{http.StatusNotFound, services.ErrNotFound},
		{http.StatusBadRequest, services.ErrValidation},
		{http.StatusGatewayTimeout, services.ErrTimeout},
		{http.StatusInternalServerError, services.ErrTransient},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"message": "backend says no"})
		}))
		_, _, err := client.SceneDetail(context.Background(), "sp-1", "s1")
		if !errors.Is(err, tc.marker) {
			t.Errorf("status %d: expected %v classification, got %v", tc.status, tc.marker, err)
		}
		if err == nil || !strings.Contains(err.Error(), "backend says no") {
			t.Errorf("status %d: backend message missing from %v", tc.status, err)
		}
	}
}

func TestGenerateBreakdownSendsOverwriteFlag(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		if r.URL.Path != "/api/screenplays/sp-1/scene-elements/12A/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("overwrite") != "true" {
			t.Errorf("missing overwrite flag in %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"elements": map[string][]string{"props": {"rope", "lantern"}},
		})
	}))

	proposed, err := client.GenerateBreakdown(context.Background(), "sp-1", "12A", true)
	if err != nil {
		t.Fatalf("GenerateBreakdown: %v", err)
	}
	if got := proposed["props"]; len(got) != 2 || got[0] != "rope" {
		t.Fatalf("unexpected proposal: %+v", proposed)
	}
}

func TestUpsertBreakdownBody(t *testing.T) {
	var received upsertRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %q", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	elements := []scenes.Element{{Key: "props", Values: []string{"rope"}}}
	if err := client.UpsertBreakdown(context.Background(), "sp-1", "4", elements); err != nil {
		t.Fatalf("UpsertBreakdown: %v", err)
	}
	if len(received.Elements) != 1 || received.Elements[0].Key != "props" {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestCreateScreenplayRequiresTitleAndID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"screenplay": map[string]string{"title": "Untitled"}})
	}))

	if _, err := client.CreateScreenplay(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
	if _, err := client.CreateScreenplay(context.Background(), "Night Shoot"); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error for missing id, got %v", err)
	}
}

func TestSaveProductionInfoNormalizesNames(t *testing.T) {
	var received production.Info
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	info := production.Info{Title: " Night Shoot ", DirectorName: "ada lovelace"}
	if err := client.SaveProductionInfo(context.Background(), "sp-1", info); err != nil {
		t.Fatalf("SaveProductionInfo: %v", err)
	}
	if received.Title != "Night Shoot" {
		t.Fatalf("title not trimmed: %q", received.Title)
	}
	if received.DirectorName != "Ada Lovelace" {
		t.Fatalf("director name not normalized: %q", received.DirectorName)
	}
}

func TestUploadScriptSendsMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("script")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "draft.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "fake pdf bytes" {
			t.Errorf("unexpected content %q", content)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.UploadScript(context.Background(), "sp-1", "/tmp/incoming/draft.pdf", strings.NewReader("fake pdf bytes"))
	if err != nil {
		t.Fatalf("UploadScript: %v", err)
	}
}

func TestScriptStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/screenplays/sp-1/summarization-status" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "processing", "message": "12 of 41 scenes"})
	}))

	status, message, err := client.ScriptStatus(context.Background(), "sp-1")
	if err != nil {
		t.Fatalf("ScriptStatus: %v", err)
	}
	if status != StatusProcessing || message != "12 of 41 scenes" {
		t.Fatalf("unexpected status %q message %q", status, message)
	}
}

func TestClientImplementsScenesService(t *testing.T) {
	var _ scenes.Service = (*Client)(nil)
}
