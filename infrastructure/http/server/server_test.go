package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vitamed/infrastructure/gemini"
	"vitamed/mocks"
	"vitamed/observability"
	"vitamed/safety"
	"vitamed/services"
)

var testOrigins = []string{"https://vitamedllm.web.app", "http://localhost:3000"}

func newServerFixture(t *testing.T) (http.Handler, *mocks.MockIGenerator) {
	ctrl := gomock.NewController(t)
	generator := mocks.NewMockIGenerator(ctrl)
	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	require.NoError(t, err)

	log := slog.Default()
	service := services.NewGenerateService(log, generator, &screener, "test persona")
	monitoring := observability.NewMonitoringManager(log)
	return NewServer(log, service, monitoring).Routes(testOrigins), generator
}

func postGenerate(handler http.Handler, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func Test_Generate_Round_Trip(t *testing.T) {
	req := require.New(t)
	handler, generator := newServerFixture(t)

	generator.EXPECT().
		Generate(gomock.Any(), "test persona", []gemini.Content{
			{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "Q"}}},
			{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "P"}}},
		}).
		Return("A", nil)

	recorder := postGenerate(handler, `{"prompt":"P","history":[{"role":"user","content":"Q"}]}`)

	req.Equal(http.StatusOK, recorder.Code)
	req.JSONEq(`{"text":"A"}`, recorder.Body.String())
}

func Test_Generate_Rejects_Bad_Input(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		description string
		body        string
		wantError   string
	}{
		{
			"Missing prompt",
			`{"history":[]}`,
			"no prompt provided",
		},
		{
			"Empty prompt",
			`{"prompt":""}`,
			"no prompt provided",
		},
		{
			"Unexpected history role",
			`{"prompt":"P","history":[{"role":"system","content":"x"}]}`,
			"invalid history entry",
		},
		{
			"Body that is not JSON",
			`{"prompt":`,
			"request body is not valid JSON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			// No generator expectation: a rejected request makes no upstream call.
			handler, _ := newServerFixture(t)
			recorder := postGenerate(handler, tt.body)

			req.Equal(http.StatusBadRequest, recorder.Code)
			var payload ErrorResponse
			req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
			req.Equal(tt.wantError, payload.Error)
		})
	}
}

func Test_Generate_Without_Credential_Returns_Generic_Server_Error(t *testing.T) {
	req := require.New(t)
	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	req.NoError(err)

	log := slog.Default()
	generator := gemini.NewClient(log, "", "gemini-test", "", time.Second)
	service := services.NewGenerateService(log, generator, &screener, "")
	handler := NewServer(log, service, observability.NewMonitoringManager(log)).Routes(testOrigins)

	recorder := postGenerate(handler, `{"prompt":"P"}`)

	req.Equal(http.StatusInternalServerError, recorder.Code)
	var payload ErrorResponse
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	req.Equal("server is not configured", payload.Error)
}

func Test_Generate_Upstream_Without_Candidates_Is_A_Bad_Gateway(t *testing.T) {
	req := require.New(t)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	screener, err := safety.NewScreener(safety.DefaultEmergencyTerms)
	req.NoError(err)
	log := slog.Default()
	generator := gemini.NewClient(log, "test-key", "gemini-test", upstream.URL, time.Second)
	service := services.NewGenerateService(log, generator, &screener, "")
	handler := NewServer(log, service, observability.NewMonitoringManager(log)).Routes(testOrigins)

	recorder := postGenerate(handler, `{"prompt":"P"}`)

	req.Equal(http.StatusBadGateway, recorder.Code)
	var payload ErrorResponse
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	req.Contains(payload.Error, "invalid response format")
}

func Test_CORS_Rejects_Unknown_Origin_Before_Body_Processing(t *testing.T) {
	req := require.New(t)
	handler, _ := newServerFixture(t)

	request := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`not even json`))
	request.Header.Set("Origin", "https://evil.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusForbidden, recorder.Code)
	var payload ErrorResponse
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	req.Equal("origin not allowed", payload.Error)
}

func Test_CORS_Allows_Listed_Origin(t *testing.T) {
	req := require.New(t)
	handler, generator := newServerFixture(t)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("A", nil)

	request := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"P"}`))
	request.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusOK, recorder.Code)
	req.Equal("http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func Test_CORS_Answers_Preflight(t *testing.T) {
	req := require.New(t)
	handler, _ := newServerFixture(t)

	request := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	request.Header.Set("Origin", "https://vitamedllm.web.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusNoContent, recorder.Code)
	req.Equal("GET, POST, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
}

func Test_Health_Probe(t *testing.T) {
	req := require.New(t)
	handler, _ := newServerFixture(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	req.Equal(http.StatusOK, recorder.Code)
	var stats observability.HealthStats
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &stats))
	req.Equal("VitaMed relay is online", stats.Status)
}

func Test_Unknown_Path_Is_Not_Found(t *testing.T) {
	req := require.New(t)
	handler, _ := newServerFixture(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nope", nil))
	req.Equal(http.StatusNotFound, recorder.Code)
}
