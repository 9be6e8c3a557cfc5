package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type nopClient struct{}

func (nopClient) Analyze(context.Context, string) (*models.AnalysisResult, error) {
	return nil, services.ErrAnalysisFailed
}

type nopSearch struct{}

func (nopSearch) Search(context.Context, string, int) ([]services.SearchResult, error) {
	return nil, nil
}

func newDeps(t *testing.T) Deps {
	storage := services.NewStorageService(t.TempDir(), nil)
	matcher := services.NewMatchService(services.NewTextExtractor(), nopClient{})
	return Deps{
		Analyze:   handlers.NewAnalyzeHandler(storage, matcher, 1<<20),
		BodyLimit: 1 << 20,
	}
}

func get(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestNewApp_Health(t *testing.T) {
	app := NewApp(newDeps(t))

	resp, body := get(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestNewApp_RootListsOnlyMountedEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Deps)
		want    []string
		notWant []string
	}{
		{
			name:    "core only",
			mutate:  func(d *Deps) {},
			want:    []string{"POST /analyze"},
			notWant: []string{"GET /api/v1/analyses", "POST /api/v1/search"},
		},
		{
			name: "history and search",
			mutate: func(d *Deps) {
				d.History = handlers.NewHistoryHandler(repositories.AnalysisRepository(nil))
				d.Search = handlers.NewSearchHandler(nopSearch{})
			},
			want: []string{"POST /analyze", "GET /api/v1/analyses/:id", "POST /api/v1/search"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newDeps(t)
			tt.mutate(&deps)
			app := NewApp(deps)

			resp, body := get(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var info struct {
				Version   string   `json:"version"`
				Endpoints []string `json:"endpoints"`
			}
			require.NoError(t, json.Unmarshal(body, &info))
			assert.Equal(t, Version, info.Version)
			for _, e := range tt.want {
				assert.Contains(t, info.Endpoints, e)
			}
			for _, e := range tt.notWant {
				assert.NotContains(t, info.Endpoints, e)
			}
		})
	}
}

func TestNewApp_UnmountedRoutesAre404(t *testing.T) {
	app := NewApp(newDeps(t))

	resp, body := get(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"error"`)
}

func TestNewApp_CORSAllowsAnyOrigin(t *testing.T) {
	app := NewApp(newDeps(t))
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://recruiter.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, _ := get(t, app, req)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewApp_AnalyzeIsMounted(t *testing.T) {
	app := NewApp(newDeps(t))

	resp, body := get(t, app, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Resume PDF is required")
}

func TestErrorHandler_TooLargeBodyIsJSON(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: newErrorHandler(1024)})
	app.Post("/analyze", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	resp, body := get(t, app, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var payload struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Resume file too large. Max size: 1024 bytes", payload.Error)
	assert.Equal(t, fiber.StatusBadRequest, payload.Code)
}

func TestErrorHandler_KeepsFiberStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: newErrorHandler(1024)})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, body := get(t, app, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.JSONEq(t, `{"error":"short and stout","code":418}`, string(body))
}
