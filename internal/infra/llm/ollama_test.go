package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_ChatCompletion_Success(t *testing.T) {
	t.Parallel()

	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaChatResponse{ //nolint:errcheck
			Message:         ollamaChatMessage{Role: "assistant", Content: "5 kg is about 11.02 lbs"},
			DoneReason:      "stop",
			Done:            true,
			PromptEvalCount: 7,
			EvalCount:       9,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b", 0)
	resp, err := p.ChatCompletion(context.Background(), UserPrompt("Convert 5 kg to lbs."))
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if resp.Content != "5 kg is about 11.02 lbs" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Model != "llama3.2:3b" {
		t.Errorf("expected default model, got %q", resp.Model)
	}
	if resp.Tokens != 16 {
		t.Errorf("expected 16 tokens, got %d", resp.Tokens)
	}
	if got.Stream {
		t.Error("expected non-streaming request")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "Convert 5 kg to lbs." {
		t.Errorf("unexpected request messages: %+v", got.Messages)
	}
}

func TestOllamaProvider_ChatCompletion_ServerError_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b", 0)
	if _, err := p.ChatCompletion(context.Background(), UserPrompt("hi")); err == nil {
		t.Error("expected error for 400 response, got nil")
	}
}

func TestOllamaProvider_ChatCompletion_BadJSON_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json")) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b", 0)
	if _, err := p.ChatCompletion(context.Background(), UserPrompt("hi")); err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestOllamaProvider_HealthCheck_Healthy(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b", 0)
	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got error: %v", err)
	}
}

func TestOllamaProvider_HealthCheck_Down_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before the health check call

	p := NewOllamaProvider(srv.URL, "llama3.2:3b", 0)
	if err := p.HealthCheck(context.Background()); err == nil {
		t.Error("expected error when server is down, got nil")
	}
}

func TestOllamaProvider_ModelInfo(t *testing.T) {
	t.Parallel()

	meta := NewOllamaProvider("http://localhost:11434", "llama3.2:3b", 0).ModelInfo()
	if meta.ID != "llama3.2:3b" || meta.Provider != "ollama" {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestBuildChatOptions(t *testing.T) {
	t.Parallel()

	t.Run("temperature", func(t *testing.T) {
		opts := buildChatOptions(ChatRequest{Temperature: 0.7})
		if opts["temperature"] != float32(0.7) {
			t.Errorf("expected temperature 0.7, got %v", opts["temperature"])
		}
	})

	t.Run("max tokens", func(t *testing.T) {
		opts := buildChatOptions(ChatRequest{MaxTokens: 256})
		if opts["num_predict"] != 256 {
			t.Errorf("expected num_predict 256, got %v", opts["num_predict"])
		}
	})

	t.Run("both zero", func(t *testing.T) {
		if opts := buildChatOptions(ChatRequest{}); opts != nil {
			t.Errorf("expected nil opts, got %v", opts)
		}
	})
}
