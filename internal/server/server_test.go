package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/wallgen/internal/domain"
	"github.com/basel-ax/wallgen/internal/service"
)

// stubClient implements domain.WallpaperClient for handler tests
type stubClient struct {
	resp      *domain.GenerationResponse
	err       error
	imageData []byte
	calls     int
}

func (s *stubClient) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	s.calls++
	return s.resp, s.err
}

func (s *stubClient) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if s.imageData == nil {
		return nil, errors.New("no image data")
	}
	return s.imageData, nil
}

func newTestServer(t *testing.T, client *stubClient) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	controller := service.NewGenerationController(client, nil, t.TempDir())
	return New(controller, nil)
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AI Wallpaper Generator")
	assert.Contains(t, body, "Your wallpaper will appear here", "idle state shows the placeholder")
	assert.NotContains(t, body, "class=\"error\"")
}

func TestIndexPageDefaultStyle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	controller := service.NewGenerationController(&stubClient{}, nil, t.TempDir())
	controller.UpdateStyle("cyberpunk") // seeded from DEFAULT_STYLE at startup
	srv := New(controller, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="cyberpunk" selected`)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	client := &stubClient{}
	srv := newTestServer(t, client)

	w := postForm(t, srv, "/generate", url.Values{"prompt": {"   "}, "style": {""}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.MsgEmptyPrompt)
	assert.Equal(t, 0, client.calls, "validation failures never reach the backend")
}

func TestGenerateSuccess(t *testing.T) {
	client := &stubClient{
		resp: &domain.GenerationResponse{Success: true, ImageURL: "https://x/y.jpg"},
	}
	srv := newTestServer(t, client)

	w := postForm(t, srv, "/generate", url.Values{
		"prompt": {"Neon cityscape at night"},
		"style":  {"cyberpunk"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `src="https://x/y.jpg"`)
	assert.Contains(t, body, "Download")
	assert.Equal(t, 1, client.calls)
}

func TestGenerateServerReportedError(t *testing.T) {
	client := &stubClient{
		resp: &domain.GenerationResponse{Success: false, Error: "bad prompt"},
	}
	srv := newTestServer(t, client)

	w := postForm(t, srv, "/generate", url.Values{"prompt": {"anything"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "bad prompt")
	assert.NotContains(t, body, `src="https:`)
}

func TestGenerateTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("dial tcp: connection refused")}
	srv := newTestServer(t, client)

	w := postForm(t, srv, "/generate", url.Values{"prompt": {"anything"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, domain.MsgGenerationFailed)
	assert.NotContains(t, body, "connection refused", "raw transport detail stays out of the page")
}

func TestDownloadWithoutImage(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	w := postForm(t, srv, "/download", url.Values{})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDownloadAfterSuccess(t *testing.T) {
	client := &stubClient{
		resp:      &domain.GenerationResponse{Success: true, ImageURL: "https://x/y.jpg"},
		imageData: []byte("fake-image-binary"),
	}
	srv := newTestServer(t, client)

	require.Equal(t, http.StatusOK, postForm(t, srv, "/generate", url.Values{"prompt": {"anything"}}).Code)

	w := postForm(t, srv, "/download", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wallpaper-")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
