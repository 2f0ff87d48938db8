package quizserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/anatolykoptev/go_quiz/internal/engine"
	"github.com/anatolykoptev/go_quiz/internal/engine/quiz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTools starts an MCP server with the quiz tools and returns a
// connected client session.
func connectTools(t *testing.T, svc QuizService) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "go_quiz", Version: "test"}, nil)
	RegisterTools(server, svc)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

// decodeStructured round-trips the tool's structured output into out.
func decodeStructured(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	require.NotNil(t, res.StructuredContent)
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestRegisterTools_Listed(t *testing.T) {
	cs := connectTools(t, &fakeService{})
	list, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"generate_quiz", "video_info", "quiz_history"}, names)
}

func TestGenerateQuizTool(t *testing.T) {
	svc := &fakeService{result: &quiz.Result{
		ID:            "id-1",
		VideoID:       "abc123",
		VideoTitle:    "Intro",
		ContentSource: engine.SourceTranscript,
		Quiz: engine.Quiz{{
			Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "D", Explanation: "e",
		}},
	}}
	cs := connectTools(t, svc)

	res := callTool(t, cs, "generate_quiz", map[string]any{
		"youtube_url":   "https://youtu.be/abc123",
		"num_questions": 4,
	})
	require.False(t, res.IsError)
	assert.Equal(t, "https://youtu.be/abc123", svc.gotURL)
	assert.Equal(t, 4, svc.gotN)

	var got quiz.Result
	decodeStructured(t, res, &got)
	assert.Equal(t, "Intro", got.VideoTitle)
	assert.Equal(t, engine.SourceTranscript, got.ContentSource)
	require.Len(t, got.Quiz, 1)
	assert.Equal(t, "D", got.Quiz[0].CorrectAnswer)
}

func TestGenerateQuizTool_Errors(t *testing.T) {
	t.Run("empty url", func(t *testing.T) {
		svc := &fakeService{}
		res := callTool(t, connectTools(t, svc), "generate_quiz", map[string]any{"youtube_url": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "youtube_url is required")
		assert.Empty(t, svc.gotURL, "service must not be called")
	})
	t.Run("service error", func(t *testing.T) {
		svc := &fakeService{err: engine.ErrVideoNotFound}
		res := callTool(t, connectTools(t, svc), "generate_quiz", map[string]any{"youtube_url": "https://youtu.be/x"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "video not found")
	})
}

func TestVideoInfoTool(t *testing.T) {
	cs := connectTools(t, &fakeService{})

	res := callTool(t, cs, "video_info", map[string]any{"youtube_url": ""})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "youtube_url is required")

	res = callTool(t, cs, "video_info", map[string]any{"youtube_url": "https://youtu.be/abc123"})
	require.False(t, res.IsError)

	var info engine.VideoInfo
	decodeStructured(t, res, &info)
	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "Intro to Go", info.Title)
}

func TestQuizHistoryTool(t *testing.T) {
	svc := &fakeService{history: []quiz.ArchivedQuiz{
		{ID: "q2", VideoID: "v2"},
		{ID: "q1", VideoID: "v1"},
	}}
	res := callTool(t, connectTools(t, svc), "quiz_history", map[string]any{"limit": 2})
	require.False(t, res.IsError)

	var got QuizHistoryOutput
	decodeStructured(t, res, &got)
	require.Len(t, got.Quizzes, 2)
	assert.Equal(t, "q2", got.Quizzes[0].ID)

	svc = &fakeService{histErr: quiz.ErrArchiveDisabled}
	res = callTool(t, connectTools(t, svc), "quiz_history", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "quiz history is disabled")
}

func resultText(res *mcp.CallToolResult) string {
	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	return text
}
