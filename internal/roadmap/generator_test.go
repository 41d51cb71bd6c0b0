package roadmap

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/roadmap-planner/internal/extract"
	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/llm"
	"github.com/jonathan/roadmap-planner/internal/logging"
	"github.com/jonathan/roadmap-planner/internal/normalize"
	"github.com/jonathan/roadmap-planner/internal/types"
)

type stubClient struct {
	complete func(ctx context.Context, messages []llm.Message, model string) (string, error)
	calls    int
}

func (s *stubClient) Complete(ctx context.Context, messages []llm.Message, model string) (string, error) {
	s.calls++
	return s.complete(ctx, messages, model)
}

func (s *stubClient) Close() error { return nil }

func replying(reply string) *stubClient {
	return &stubClient{complete: func(context.Context, []llm.Message, string) (string, error) {
		return reply, nil
	}}
}

func failing(err error) *stubClient {
	return &stubClient{complete: func(context.Context, []llm.Message, string) (string, error) {
		return "", err
	}}
}

func frontendProfile() types.Profile {
	return types.Profile{
		Name:               "Riley",
		TargetRole:         "Frontend Developer Intern",
		Experience:         "complete-beginner",
		Goals:              []string{"Attend hackathons"},
		PreferredCompanies: []string{"Google"},
	}
}

const validReply = "Here is your plan:\n```json\n" + `{
  "phases": [
    {"id": "phase-1", "title": "Foundations", "period": "Sep 2025", "color": "from-blue-500 to-cyan-500", "isExpanded": true,
     "tasks": [{"id": "task-1-1", "text": "Learn HTML", "completed": true}, {"text": "Learn CSS"}]}
  ],
  "resources": [{"id": "res-1", "title": "MDN", "url": "https://developer.mozilla.org/", "category": "CS Learning", "description": "Docs", "isBookmarked": true}],
  "badges": [{"id": "badge-1", "title": "Starter", "description": "Began", "icon": "Star", "earned": true, "points": 50}]
}` + "\n```"

func TestGenerate_AIPath(t *testing.T) {
	client := replying(validReply)
	g := NewGenerator(client)

	out := g.Generate(context.Background(), frontendProfile())

	assert.Equal(t, SourceAI, out.Source)
	assert.NoError(t, out.Err)
	assert.Equal(t, StageNone, out.Stage)
	assert.Equal(t, 1, client.calls)

	require.Len(t, out.Result.Phases, 1)
	require.Len(t, out.Result.Phases[0].Tasks, 2)
	assert.Equal(t, "task-1-2", out.Result.Phases[0].Tasks[1].ID)
	for _, task := range out.Result.Phases[0].Tasks {
		assert.False(t, task.Completed)
	}
	assert.False(t, out.Result.Resources[0].IsBookmarked)
	assert.False(t, out.Result.Badges[0].Earned)
}

func TestGenerate_FallbackOnEveryFailureKind(t *testing.T) {
	tests := []struct {
		name      string
		client    llm.Client
		wantStage Stage
		wantKind  string
	}{
		{
			name:      "transport",
			client:    failing(&llm.TransportError{Message: "dial", Cause: errors.New("connection refused")}),
			wantStage: StageRequest,
			wantKind:  KindTransport,
		},
		{
			name:      "configuration",
			client:    failing(&llm.ConfigurationError{Message: "OpenAI API key not configured"}),
			wantStage: StageRequest,
			wantKind:  KindConfiguration,
		},
		{
			name:      "api",
			client:    failing(&llm.APIError{StatusCode: 429, Message: "Rate limit reached"}),
			wantStage: StageRequest,
			wantKind:  KindAPI,
		},
		{
			name:      "unknown",
			client:    failing(errors.New("something odd")),
			wantStage: StageRequest,
			wantKind:  KindUnknown,
		},
		{
			name:      "parse",
			client:    replying("I'm sorry, I cannot produce a roadmap right now."),
			wantStage: StageExtract,
			wantKind:  KindParse,
		},
		{
			name:      "validation",
			client:    replying(`{"phases": [], "resources": []}`),
			wantStage: StageNormalize,
			wantKind:  KindValidation,
		},
		{
			name:      "nil client",
			client:    nil,
			wantStage: StageRequest,
			wantKind:  KindConfiguration,
		},
		{
			name: "panic",
			client: &stubClient{complete: func(context.Context, []llm.Message, string) (string, error) {
				panic("boom")
			}},
			wantStage: StageRequest,
			wantKind:  KindPanic,
		},
	}

	p := frontendProfile()
	want := fallback.Generate(p)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.client)

			out := g.Generate(context.Background(), p)

			assert.Equal(t, SourceFallback, out.Source)
			assert.Equal(t, tt.wantStage, out.Stage)
			require.Error(t, out.Err)
			assert.Equal(t, tt.wantKind, ErrorKind(out.Err))
			if diff := cmp.Diff(want, out.Result); diff != "" {
				t.Errorf("fallback result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateRoadmap_TransportErrorStillResolves(t *testing.T) {
	g := NewGenerator(failing(&llm.TransportError{Message: "network down"}))

	got := g.GenerateRoadmap(context.Background(), frontendProfile())

	assert.Len(t, got.Phases, 4)
	assert.NotEmpty(t, got.Resources)
	assert.NotEmpty(t, got.Badges)
}

func TestGenerate_MissingBadgesFallsBack(t *testing.T) {
	reply := `{"phases": [{"id": "phase-1", "title": "A", "tasks": [{"id": "t", "text": "x"}]}], "resources": []}`
	g := NewGenerator(replying(reply))

	out := g.Generate(context.Background(), frontendProfile())

	assert.Equal(t, SourceFallback, out.Source)
	var vErr *normalize.ValidationError
	assert.True(t, errors.As(out.Err, &vErr))
	assert.Len(t, out.Result.Phases, 4)
}

func TestGenerate_LogsFallbackAtWarn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	g := NewGenerator(replying("not json at all"), WithLogger(logging.FromZap(zap.New(core))))

	g.Generate(context.Background(), frontendProfile())

	warns := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warns, 1)
	fields := warns[0].ContextMap()
	assert.Equal(t, string(StageExtract), fields["stage"])
	assert.Equal(t, KindParse, fields["error_kind"])
	assert.Equal(t, "Frontend Developer Intern", fields["role"])
}

func TestGenerate_PassesModelAndMessages(t *testing.T) {
	client := &stubClient{complete: func(_ context.Context, messages []llm.Message, model string) (string, error) {
		assert.Equal(t, "gpt-4o", model)
		require.Len(t, messages, 2)
		assert.Equal(t, llm.RoleSystem, messages[0].Role)
		assert.Equal(t, llm.RoleUser, messages[1].Role)
		assert.Contains(t, messages[1].Content, "Frontend Developer Intern")
		return validReply, nil
	}}

	out := NewGenerator(client, WithModel("gpt-4o")).Generate(context.Background(), frontendProfile())
	assert.Equal(t, SourceAI, out.Source)
}

func TestGenerate_TimeoutBoundsRequest(t *testing.T) {
	client := &stubClient{complete: func(ctx context.Context, _ []llm.Message, _ string) (string, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		return "", &llm.TransportError{Message: "timeout", Cause: context.DeadlineExceeded}
	}}

	out := NewGenerator(client, WithTimeout(time.Minute)).Generate(context.Background(), frontendProfile())
	assert.Equal(t, SourceFallback, out.Source)
	assert.True(t, errors.Is(out.Err, context.DeadlineExceeded))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: &llm.ConfigurationError{Message: "x"}, want: KindConfiguration},
		{err: fmt.Errorf("wrapped: %w", &llm.TransportError{Message: "x"}), want: KindTransport},
		{err: &llm.APIError{StatusCode: 500}, want: KindAPI},
		{err: &extract.ParseError{Cause: errors.New("x")}, want: KindParse},
		{err: &normalize.ValidationError{Message: "x"}, want: KindValidation},
		{err: &PanicError{Stage: StageExtract, Value: "x"}, want: KindPanic},
		{err: errors.New("x"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}
