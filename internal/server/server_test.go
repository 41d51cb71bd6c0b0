package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/roadmap-planner/internal/db"
	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
	"github.com/jonathan/roadmap-planner/internal/server/ratelimit"
	"github.com/jonathan/roadmap-planner/internal/types"
)

type fakeStore struct {
	mu      sync.Mutex
	saved   []db.RunInput
	runs    map[uuid.UUID]*db.Run
	saveErr error
	lastLim int
}

func newFakeStore() *fakeStore {
	return &fakeStore{runs: make(map[uuid.UUID]*db.Run)}
}

func (f *fakeStore) SaveRun(_ context.Context, in db.RunInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return uuid.Nil, f.saveErr
	}
	id := uuid.New()
	f.saved = append(f.saved, in)
	f.runs[id] = &db.Run{
		ID:        id,
		Role:      in.Profile.Role(),
		Profile:   in.Profile,
		Result:    in.Result,
		Source:    in.Source,
		CreatedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	return id, nil
}

func (f *fakeStore) GetRun(_ context.Context, id uuid.UUID) (*db.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[id], nil
}

func (f *fakeStore) ListRuns(_ context.Context, limit int) ([]db.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLim = limit
	out := make([]db.Run, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, *r)
	}
	return out, nil
}

func frontendProfile() types.Profile {
	return types.Profile{
		Name:               "Sam",
		Email:              "sam@example.com",
		EducationLevel:     "undergraduate",
		TargetRole:         "Frontend Developer",
		PreferredCompanies: []string{"Google"},
		Goals:              []string{"hackathons"},
	}
}

// newTestServer uses a generator with no client, so every request takes the
// fallback path deterministically.
func newTestServer(t *testing.T, store RunStore, rl *ratelimit.Config) *Server {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	s := New(Config{Port: 0, RateLimit: rl}, roadmap.NewGenerator(nil), store)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "192.0.2.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := do(t, s.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","history":"disabled"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := do(t, s.Handler(), http.MethodOptions, "/roadmaps", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCreateRoadmap_WithoutStore(t *testing.T) {
	s := newTestServer(t, nil, nil)
	p := frontendProfile()

	rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", p)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got RoadmapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.ID)
	if diff := cmp.Diff(fallback.Generate(p), got.GenerationResult); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRoadmap_NeverExposesSource(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)
	rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", frontendProfile())
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"id", "phases", "resources", "badges"}, keys)
	assert.NotContains(t, rec.Body.String(), `"fallback"`)
}

func TestCreateRoadmap_PersistsOperatorDetails(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)

	rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", frontendProfile())
	require.Equal(t, http.StatusCreated, rec.Code)

	var got RoadmapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	_, err := uuid.Parse(got.ID)
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, "fallback", saved.Source)
	assert.Equal(t, "request", saved.FailureStage)
	assert.Equal(t, roadmap.KindConfiguration, saved.FailureKind)
	assert.NotEmpty(t, saved.FailureError)
	assert.Equal(t, "Frontend Developer", saved.Profile.TargetRole)
}

func TestCreateRoadmap_SaveFailureStillReturnsRoadmap(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("connection refused")
	s := newTestServer(t, store, nil)

	rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", frontendProfile())
	require.Equal(t, http.StatusCreated, rec.Code)

	var got RoadmapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.ID)
	assert.Len(t, got.Phases, 4)
}

func TestCreateRoadmap_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantFields []string
		wantError  string
	}{
		{name: "malformed json", body: `{"targetRole": `, wantError: "invalid JSON"},
		{name: "missing role", body: types.Profile{Name: "Sam"}, wantFields: []string{"targetRole"}},
		{
			name:       "bad email and blank goal",
			body:       types.Profile{TargetRole: "Backend", Email: "nope", Goals: []string{"ok", ""}},
			wantFields: []string{"email", "goals[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body struct {
				Error  string `json:"error"`
				Fields []struct {
					Field string `json:"field"`
				} `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Contains(t, body.Error, tt.wantError)
			}
			var fields []string
			for _, f := range body.Fields {
				fields = append(fields, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestCreateRoadmap_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, nil, nil)
	huge := `{"targetRole":"` + strings.Repeat("x", maxProfileBytes) + `"}`
	rec := do(t, s.Handler(), http.MethodPost, "/roadmaps", huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoadmap(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)
	h := s.Handler()

	created := do(t, h, http.MethodPost, "/roadmaps", frontendProfile())
	var first RoadmapResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &first))

	t.Run("found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/roadmaps/"+first.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got RoadmapResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, first.ID, got.ID)
		require.NotNil(t, got.CreatedAt)
		if diff := cmp.Diff(first.GenerationResult, got.GenerationResult); diff != "" {
			t.Errorf("stored result mismatch (-want +got):\n%s", diff)
		}
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "source")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/roadmaps/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/roadmaps/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListRoadmaps(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)
	h := s.Handler()

	do(t, h, http.MethodPost, "/roadmaps", frontendProfile())
	do(t, h, http.MethodPost, "/roadmaps", frontendProfile())

	rec := do(t, h, http.MethodGet, "/roadmaps?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, store.lastLim)

	var body struct {
		Roadmaps []RunSummary `json:"roadmaps"`
		Count    int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	for _, r := range body.Roadmaps {
		assert.Equal(t, "Frontend Developer", r.Role)
		assert.Equal(t, 4, r.Phases)
		assert.Positive(t, r.Tasks)
	}

	bad := do(t, h, http.MethodGet, "/roadmaps?limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestHistoryDisabled(t *testing.T) {
	s := newTestServer(t, nil, nil)
	for _, target := range []string{"/roadmaps", "/roadmaps/" + uuid.NewString()} {
		rec := do(t, s.Handler(), http.MethodGet, target, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestRateLimit_GenerateTier(t *testing.T) {
	rl := &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/roadmaps", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	}
	s := newTestServer(t, nil, rl)
	h := s.Handler()

	first := do(t, h, http.MethodPost, "/roadmaps", frontendProfile())
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(t, h, http.MethodPost, "/roadmaps", frontendProfile())
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")

	health := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrRunNotFound{ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "limit", Message: "bad"}, http.StatusBadRequest},
		{"history disabled", ErrHistoryDisabled, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
