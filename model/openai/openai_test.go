package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/model"
)

var _ model.Model = (*Model)(nil)

func TestBuildMessages(t *testing.T) {
	msgs := buildMessages(model.Request{
		Instructions: "be brief",
		Contents: []core.Content{
			core.NewTextContent("user", "hello"),
			core.NewTextContent("assistant", "hi"),
			{Role: "user"},
			core.NewTextContent("tool", "treated as user"),
		},
	})
	assert.Len(t, msgs, 4)
	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
	assert.NotNil(t, msgs[2].OfAssistant)
	assert.NotNil(t, msgs[3].OfUser)
}

func TestInfo(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = "gpt-test"
		o.APIKey = "sk-test"
	})
	assert.Equal(t, model.Info{Name: "gpt-test", Provider: "openai"}, m.Info())
}

func newTestServer(t *testing.T, contentType, body string, gotReq *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		w.Header().Set("Content-Type", contentType)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestModel(srv *httptest.Server) *Model {
	client := openai.NewClient(
		option.WithBaseURL(srv.URL+"/"),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	)
	return NewModelFromClient(&client, func(o *Options) { o.Model = "gpt-test" })
}

func TestNewModelFromClient_Generate(t *testing.T) {
	var gotReq map[string]any
	srv := newTestServer(t, "application/json", `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-test",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Release 1.2 is out."}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
	}`, &gotReq)
	m := newTestModel(srv)
	assert.Equal(t, model.Info{Name: "gpt-test", Provider: "openai"}, m.Info())

	res, err := model.Collect(context.Background(), m, model.Request{
		Instructions: "be brief",
		Contents:     []core.Content{core.NewTextContent("user", "announce 1.2")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Release 1.2 is out.", res.Text)
	assert.Equal(t, "stop", res.FinishReason)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 17, res.Usage.TotalTokens)

	assert.Equal(t, "gpt-test", gotReq["model"])
	msgs, ok := gotReq["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestNewModelFromClient_Stream(t *testing.T) {
	var gotReq map[string]any
	chunk := func(content, finish string) string {
		fr := "null"
		if finish != "" {
			fr = fmt.Sprintf("%q", finish)
		}
		return fmt.Sprintf(`data: {"id":"chatcmpl-2","object":"chat.completion.chunk","created":1700000000,"model":"gpt-test","choices":[{"index":0,"delta":{"content":%q},"finish_reason":%s}]}`+"\n\n", content, fr)
	}
	body := chunk("Hel", "") + chunk("lo", "stop") + "data: [DONE]\n\n"
	srv := newTestServer(t, "text/event-stream", body, &gotReq)

	res, err := model.Collect(context.Background(), newTestModel(srv), model.Request{
		Contents: []core.Content{core.NewTextContent("user", "greet")},
		Stream:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", res.Text)
	assert.Equal(t, "stop", res.FinishReason)
	assert.Equal(t, true, gotReq["stream"])
}
