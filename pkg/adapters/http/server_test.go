package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	rewindhttp "github.com/aretw0/rewind/pkg/adapters/http"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/dsl"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...rewindhttp.Option) *httptest.Server {
	t.Helper()

	b := dsl.New().Initial("normal")
	b.Add("normal").On("study", "busy")
	b.Add("busy").On("get_tired", "sleeping")
	b.Add("sleeping").On("wake", "normal")
	def, err := b.Build()
	require.NoError(t, err)

	manager := session.NewManager(def, memory.NewStore())
	srv := httptest.NewServer(rewindhttp.NewHandler(manager, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServerWithMetrics(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	b := dsl.New().Initial("normal")
	b.Add("normal").On("study", "busy")
	b.Add("busy").On("get_tired", "sleeping")
	b.Add("sleeping")
	def, err := b.Build()
	require.NoError(t, err)

	manager := session.NewManager(def, memory.NewStore(),
		session.WithMachineOptions(fsm.WithLifecycleHooks(metrics.Hooks())))
	srv := httptest.NewServer(rewindhttp.NewHandler(manager, rewindhttp.WithGatherer(reg)))
	t.Cleanup(srv.Close)
	return srv, reg
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func ptr(s string) *string { return &s }

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/s1"

	resp := do(t, http.MethodPut, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	started := decode[rewindhttp.Session](t, resp)
	assert.Equal(t, "normal", started.Current)
	assert.Equal(t, []string{"normal"}, started.History)
	assert.False(t, started.CanUndo)
	assert.Equal(t, []string{"study"}, started.PermittedEvents)

	resp = do(t, http.MethodPost, base+"/trigger", rewindhttp.TriggerRequest{Event: ptr("study")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[domain.Snapshot](t, resp)
	assert.Equal(t, "busy", snap.Current)
	assert.Equal(t, 1, snap.Cursor)

	resp = do(t, http.MethodPost, base+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	step := decode[rewindhttp.StepResponse](t, resp)
	assert.True(t, step.Ok)
	assert.Equal(t, "normal", step.Snapshot.Current)

	resp = do(t, http.MethodPost, base+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	step = decode[rewindhttp.StepResponse](t, resp)
	assert.False(t, step.Ok, "nothing left to undo")

	resp = do(t, http.MethodPost, base+"/redo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	step = decode[rewindhttp.StepResponse](t, resp)
	assert.True(t, step.Ok)
	assert.Equal(t, "busy", step.Snapshot.Current)

	resp = do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[rewindhttp.Session](t, resp)
	assert.Equal(t, "busy", view.Current)
	assert.True(t, view.CanUndo)
	assert.False(t, view.CanRedo)
	assert.Equal(t, []string{"get_tired"}, view.PermittedEvents)

	resp = do(t, http.MethodPost, base+"/change", rewindhttp.ChangeStateRequest{State: ptr("sleeping")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.Snapshot](t, resp)
	assert.Equal(t, []string{"normal", "busy", "sleeping"}, snap.History)

	resp = do(t, http.MethodPost, base+"/clear-history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.Snapshot](t, resp)
	assert.Equal(t, []string{"sleeping"}, snap.History)

	resp = do(t, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[domain.Snapshot](t, resp)
	assert.Equal(t, domain.NewSnapshot("normal"), snap)

	resp = do(t, http.MethodGet, srv.URL+"/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"s1"}, decode[rewindhttp.SessionsResponse](t, resp).Sessions)

	resp = do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartSession_KeepsExisting(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/s1"

	do(t, http.MethodPut, base, nil)
	do(t, http.MethodPost, base+"/trigger", rewindhttp.TriggerRequest{Event: ptr("study")})

	resp := do(t, http.MethodPut, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "busy", decode[rewindhttp.Session](t, resp).Current)
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/s1"
	do(t, http.MethodPut, base, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "Invalid Transition",
			method:     http.MethodPost,
			path:       "/sessions/s1/trigger",
			body:       rewindhttp.TriggerRequest{Event: ptr("wake")},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "no transition from state 'normal' for event 'wake'. Permitted events: study.",
		},
		{
			name:       "Invalid State",
			method:     http.MethodPost,
			path:       "/sessions/s1/change",
			body:       rewindhttp.ChangeStateRequest{State: ptr("flying")},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "state 'flying' is not defined",
		},
		{
			name:       "Unknown Session",
			method:     http.MethodPost,
			path:       "/sessions/ghost/undo",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Malformed Body",
			method:     http.MethodPost,
			path:       "/sessions/s1/trigger",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "Missing Event",
			method:     http.MethodPost,
			path:       "/sessions/s1/trigger",
			body:       rewindhttp.TriggerRequest{},
			wantStatus: http.StatusBadRequest,
			wantError:  "event is required",
		},
		{
			name:       "Empty Event",
			method:     http.MethodPost,
			path:       "/sessions/s1/trigger",
			body:       `{"event": ""}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "no transition from state 'normal' for event ''. Permitted events: study.",
		},
		{
			name:       "Missing State",
			method:     http.MethodPost,
			path:       "/sessions/s1/change",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "state is required",
		},
		{
			name:       "Empty State",
			method:     http.MethodPost,
			path:       "/sessions/s1/change",
			body:       `{"state": ""}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "state '' is not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decode[rewindhttp.ErrorResponse](t, resp)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			} else {
				assert.NotEmpty(t, body.Error)
			}
		})
	}

	// Rejected operations leave the session untouched.
	resp := do(t, http.MethodGet, base, nil)
	assert.Equal(t, []string{"normal"}, decode[rewindhttp.Session](t, resp).History)
}

func TestGetStates(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/states", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"normal", "busy", "sleeping"}, decode[rewindhttp.StatesResponse](t, resp).States)

	resp = do(t, http.MethodGet, srv.URL+"/states?event=wake", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"sleeping"}, decode[rewindhttp.StatesResponse](t, resp).States)

	resp = do(t, http.MethodGet, srv.URL+"/states?event=fly", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{}, decode[rewindhttp.StatesResponse](t, resp).States)
}

func TestGraph(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/graph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "normal --> busy : study")
	assert.NotContains(t, string(data), "classDef")

	do(t, http.MethodPut, srv.URL+"/sessions/s1", nil)
	do(t, http.MethodPost, srv.URL+"/sessions/s1/trigger", rewindhttp.TriggerRequest{Event: ptr("study")})

	resp = do(t, http.MethodGet, srv.URL+"/sessions/s1/graph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class normal visited")
	assert.Contains(t, string(data), "class busy current")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/metrics", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "metrics are disabled without a gatherer")

	srv, _ = newTestServerWithMetrics(t)
	do(t, http.MethodPut, srv.URL+"/sessions/s1", nil)
	do(t, http.MethodPost, srv.URL+"/sessions/s1/trigger", rewindhttp.TriggerRequest{Event: ptr("study")})

	resp = do(t, http.MethodGet, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rewind_transitions_total{kind="trigger"} 1`)
}

func TestOpenAPISpec(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	loaded, err := openapi3.NewLoader().LoadFromData(data)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate(context.Background()))

	swagger, err := rewindhttp.GetSwagger()
	require.NoError(t, err)
	for _, path := range []string{"/health", "/states", "/sessions/{id}", "/sessions/{id}/trigger", "/sessions/{id}/clear-history"} {
		assert.NotNil(t, swagger.Paths.Find(path), "path %s", path)
	}
	assert.Equal(t, "trigger", swagger.Paths.Find("/sessions/{id}/trigger").Post.OperationID)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodOptions, srv.URL+"/sessions/s1/trigger", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
