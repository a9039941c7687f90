package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covscore/covscore/internal/adapters/inbound/web"
	"github.com/covscore/covscore/internal/adapters/outbound/decoder"
	"github.com/covscore/covscore/internal/application"
	"github.com/covscore/covscore/internal/domain"
)

const summaryReport = `{"total":{"statements":{"total":100,"covered":95},"branches":{"total":100,"covered":90},"functions":{"total":100,"covered":92},"lines":{"total":100,"covered":97}}}`

func newTestServer(t *testing.T, cfg web.Config) http.Handler {
	t.Helper()
	svc := application.NewAnalyzeService(nil, decoder.New(nil), nil, nil, nil)
	return web.New(cfg, svc).Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_Defaults(t *testing.T) {
	svc := application.NewAnalyzeService(nil, decoder.New(nil), nil, nil, nil)
	assert.Equal(t, web.DefaultAddr, web.New(web.Config{}, svc).Addr())
	assert.Equal(t, ":9999", web.New(web.Config{Addr: ":9999"}, svc).Addr())
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t, web.Config{Version: "1.2.3"})

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body web.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestIndexServesForm(t *testing.T) {
	handler := newTestServer(t, web.Config{})

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/analyze">`)
	assert.NotContains(t, rec.Body.String(), `class="notice"`)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	handler := newTestServer(t, web.Config{})
	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIAnalyze(t *testing.T) {
	handler := newTestServer(t, web.Config{})

	rec := serve(handler, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(summaryReport)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, domain.FormatSummary, a.Format)
	assert.Equal(t, "Excellent Coverage", a.Score.RatingLabel)
	assert.Equal(t, 5, a.Score.StarRating)
}

func TestAPIAnalyze_InputErrors(t *testing.T) {
	handler := newTestServer(t, web.Config{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"total":`, "Invalid JSON"},
		{"empty object", `{}`, "No data found"},
		{"array", `[1,2]`, "No data found"},
		{"empty body", ``, "Invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(handler, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body web.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.want)
		})
	}
}

func TestAPIAnalyze_BodyTooLarge(t *testing.T) {
	handler := newTestServer(t, web.Config{MaxBodyBytes: 16})

	rec := serve(handler, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(summaryReport)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestFormAnalyze_RendersReport(t *testing.T) {
	handler := newTestServer(t, web.Config{})

	form := url.Values{"report": {summaryReport}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Coverage report")
	assert.Contains(t, body, "Excellent Coverage")
	assert.Contains(t, body, `style="background: #28a745"`)
}

func TestFormAnalyze_ShowsNotice(t *testing.T) {
	handler := newTestServer(t, web.Config{})

	form := url.Values{"report": {`{"broken"`}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(handler, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="notice"`)
	assert.Contains(t, body, "Invalid JSON!")
	assert.Contains(t, body, "{&#34;broken&#34;", "the pasted text is kept and escaped")
}
