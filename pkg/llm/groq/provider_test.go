package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"otakupal-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestChat_SendsHistoryAndReturnsCompletion(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello from the model"}}]}`))
	}))
	defer srv.Close()

	provider := NewGroqProvider("test-key", srv.URL, "llama3-70b-8192", 5*time.Second)

	reply, err := provider.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hi"},
			{Role: "model", Content: "previous reply"},
		},
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1024),
	)

	assert.NoError(t, err)
	assert.Equal(t, "Hello from the model", reply)

	assert.Equal(t, "llama3-70b-8192", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	assert.Equal(t, 1024, captured.MaxTokens)

	assert.Len(t, captured.Messages, 3)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	// "model" is normalized to the OpenAI assistant role.
	assert.Equal(t, "assistant", captured.Messages[2].Role)
}

func TestChat_ModelOverride(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	provider := NewGroqProvider("test-key", srv.URL, "llama3-70b-8192", 5*time.Second)

	_, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		llm.WithModel("mixtral-8x7b"),
	)

	assert.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b", gotModel)
}

func TestChat_UpstreamErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	provider := NewGroqProvider("test-key", srv.URL, "llama3-70b-8192", 5*time.Second)

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "groq request failed")
}

func TestGenerate_DelegatesToChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		assert.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"generated"}}]}`))
	}))
	defer srv.Close()

	provider := NewGroqProvider("test-key", srv.URL, "llama3-70b-8192", 5*time.Second)

	reply, err := provider.Generate(context.Background(), "a single prompt")

	assert.NoError(t, err)
	assert.Equal(t, "generated", reply)
}
