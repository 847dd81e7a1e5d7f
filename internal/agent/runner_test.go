package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/openai/openai-go/v3/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns canned responses in order, recording the
// input it was called with.
type scriptedProvider struct {
	t       *testing.T
	scripts []string
	call    int
	inputs  [][]responses.ResponseInputItemUnionParam
}

func (p *scriptedProvider) ChatStream(ctx context.Context, input []responses.ResponseInputItemUnionParam, tools []responses.ToolUnionParam, onToken func(string)) (*responses.Response, error) {
	p.inputs = append(p.inputs, input)
	require.Less(p.t, p.call, len(p.scripts), "provider called more times than scripted")

	var resp responses.Response
	require.NoError(p.t, json.Unmarshal([]byte(p.scripts[p.call]), &resp))
	p.call++
	onToken("tok")
	return &resp, nil
}

type echoTool struct {
	calls []string
}

func (e *echoTool) Name() string        { return "echo" }
func (e *echoTool) Description() string { return "Echoes its input back" }
func (e *echoTool) InputSchema() any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{"text": map[string]any{"type": "string"}},
		"required":   []string{"text"},
	}
}

func (e *echoTool) Execute(ctx context.Context, input string) (string, error) {
	e.calls = append(e.calls, input)
	return "echoed", nil
}

const functionCallResponse = `{"output":[{"type":"function_call","call_id":"call_1","name":"echo","arguments":"{\"text\":\"hi\"}"}]}`

const messageResponse = `{"output":[{"type":"message","role":"assistant","status":"completed","content":[{"type":"output_text","text":"all done"}]}]}`

func TestRunnerToolLoop(t *testing.T) {
	provider := &scriptedProvider{t: t, scripts: []string{functionCallResponse, messageResponse}}
	tool := &echoTool{}
	registry := NewRegistry()
	registry.Register(tool)

	runner := NewReactRunner(Profile{Name: "tester", Instructions: "Test things."}, provider, registry)

	var events []Event
	out, err := runner.Run(context.Background(), "run-1", "go", func(e Event) { events = append(events, e) })
	require.NoError(t, err)

	assert.Equal(t, "all done", out)
	require.Len(t, tool.calls, 1)
	assert.JSONEq(t, `{"text":"hi"}`, tool.calls[0])

	types := make(map[EventType]int)
	for _, e := range events {
		types[e.Type]++
	}
	assert.Equal(t, 1, types[EventToolCall])
	assert.Equal(t, 1, types[EventToolResult])
	assert.Equal(t, 1, types[EventDone])

	// Second call carries the function call and its output back.
	require.Equal(t, 2, provider.call)
	assert.Greater(t, len(provider.inputs[1]), len(provider.inputs[0]))
}

func TestRunnerUnknownToolReportedToModel(t *testing.T) {
	provider := &scriptedProvider{t: t, scripts: []string{functionCallResponse, messageResponse}}
	runner := NewReactRunner(Profile{Name: "tester"}, provider, NewRegistry())

	out, err := runner.Run(context.Background(), "run-1", "go", func(Event) {})
	require.NoError(t, err)
	assert.Equal(t, "all done", out)
}

func TestRunnerMaxTurns(t *testing.T) {
	provider := &scriptedProvider{t: t, scripts: []string{functionCallResponse, functionCallResponse}}
	tool := &echoTool{}
	registry := NewRegistry()
	registry.Register(tool)

	runner := NewReactRunner(Profile{Name: "looper"}, provider, registry, WithMaxTurns(2))

	_, err := runner.Run(context.Background(), "run-1", "go", func(Event) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 2 turns")
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &scriptedProvider{t: t, scripts: []string{messageResponse}}
	runner := NewReactRunner(Profile{Name: "tester"}, provider, NewRegistry())

	_, err := runner.Run(ctx, "run-1", "go", func(Event) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistryScope(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{})

	scoped := registry.Scope([]string{"echo", "missing"})
	_, ok := scoped.Get("echo")
	assert.True(t, ok)
	assert.Len(t, scoped.All(), 1)

	empty := registry.Scope(nil)
	assert.Empty(t, empty.All())
}
