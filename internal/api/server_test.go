package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/llm"
)

func newTestServer(t *testing.T, opts Options, responses ...llm.MockResponse) (*httptest.Server, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	if opts.Generator == nil {
		opts.Generator = course.NewGenerator(mock, course.DefaultOptions(), nil)
	}
	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return srv, mock
}

func postCourse(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/courses", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decodeError(t *testing.T, b []byte) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(b, &e))
	return e
}

func TestConfigStatus(t *testing.T) {
	for _, configured := range []bool{true, false} {
		srv, _ := newTestServer(t, Options{Configured: configured})

		resp, err := http.Get(srv.URL + "/api/config")
		require.NoError(t, err)
		var got configResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, configured, got.Configured)
	}
}

func TestCreateCourse_Success(t *testing.T) {
	srv, mock := newTestServer(t, Options{Configured: true}, llm.MockResponse{Content: course.DemoJSON()})

	resp, b := postCourse(t, srv, `{"request":"espresso basics"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var c course.Content
	require.NoError(t, json.Unmarshal(b, &c))
	assert.Equal(t, course.Demo().Title, c.Title)
	assert.Len(t, c.Content, 5)
	assert.Len(t, c.Quiz, 3)
	assert.Equal(t, 1, mock.CallCount())
}

func TestCreateCourse_FailureStatuses(t *testing.T) {
	tests := []struct {
		name   string
		resp   llm.MockResponse
		status int
		reason course.Reason
	}{
		{
			name:   "provider error",
			resp:   llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
			status: http.StatusBadGateway,
			reason: course.ReasonGenerationFailed,
		},
		{
			name:   "empty",
			resp:   llm.MockResponse{Content: []byte("  ")},
			status: http.StatusBadGateway,
			reason: course.ReasonEmptyResponse,
		},
		{
			name:   "not json",
			resp:   llm.MockResponse{Content: []byte("here is your course")},
			status: http.StatusBadGateway,
			reason: course.ReasonParseFailed,
		},
		{
			name:   "schema violation",
			resp:   llm.MockResponse{Content: []byte(`{"title":"x","description":"y","content":[]}`)},
			status: http.StatusUnprocessableEntity,
			reason: course.ReasonValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, Options{Configured: true}, tt.resp)
			resp, b := postCourse(t, srv, `{"request":"espresso"}`)

			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, b)
			assert.Equal(t, string(tt.reason), e.Error)
			assert.Equal(t, tt.reason.Message(), e.Message)
		})
	}
}

func TestCreateCourse_NotConfigured(t *testing.T) {
	srv, mock := newTestServer(t, Options{Configured: false})
	resp, b := postCourse(t, srv, `{"request":"espresso"}`)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, string(course.ReasonNotConfigured), decodeError(t, b).Error)
	assert.Equal(t, 0, mock.CallCount())
}

func TestCreateCourse_BadRequests(t *testing.T) {
	srv, mock := newTestServer(t, Options{Configured: true})

	resp, b := postCourse(t, srv, `{"request":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBlankRequest, decodeError(t, b).Error)

	resp, b = postCourse(t, srv, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBadRequest, decodeError(t, b).Error)

	assert.Equal(t, 0, mock.CallCount())
}

func TestCreateCourse_RateLimited(t *testing.T) {
	srv, _ := newTestServer(t, Options{Configured: true, Rate: 0.001, Burst: 1},
		llm.MockResponse{Content: course.DemoJSON()},
		llm.MockResponse{Content: course.DemoJSON()},
	)

	resp, _ := postCourse(t, srv, `{"request":"espresso"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, b := postCourse(t, srv, `{"request":"espresso"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, codeRateLimited, decodeError(t, b).Error)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))

	// The config endpoint is not limited.
	cfgResp, err := http.Get(srv.URL + "/api/config")
	require.NoError(t, err)
	cfgResp.Body.Close()
	assert.Equal(t, http.StatusOK, cfgResp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, Options{Configured: true}, llm.MockResponse{Content: course.DemoJSON()})
	postCourse(t, srv, `{"request":"espresso"}`)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Contains(t, string(b), `trainy_course_generations_total{outcome="success"} 1`)
	assert.Contains(t, string(b), "trainy_course_generation_duration_seconds_count 1")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(course.ReasonNotConfigured))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(course.ReasonValidationFailed))
	assert.Equal(t, http.StatusBadGateway, statusFor(course.ReasonParseFailed))
	assert.Equal(t, http.StatusBadGateway, statusFor(course.ReasonEmptyResponse))
	assert.Equal(t, http.StatusBadGateway, statusFor(course.ReasonGenerationFailed))
}
