package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"leaselens/internal/model"
)

func TestOpenAIProvider_ExtractFacts_Success(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var chatReq openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(chatReq.Messages) != 2 {
			t.Errorf("Expected system + user messages, got %d", len(chatReq.Messages))
		}
		if !strings.Contains(chatReq.Messages[1].Content, "base_year") {
			t.Error("Expected prompt to request the missing field")
		}

		// Return success response
		resp := openai.ChatCompletionResponse{
			ID:      "chatcmpl-123",
			Object:  "chat.completion",
			Created: 1677652288,
			Model:   "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: `{"base_year": "2016", "security_deposit": null}`,
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{
				TotalTokens: 100,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	// Create provider
	config := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	}
	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	// Test ExtractFacts
	req := ExtractRequest{
		Text:    "The Base Year shall be 2016.",
		Missing: []model.FieldKind{model.FieldBaseYear, model.FieldSecurityDeposit},
	}

	resp, err := provider.ExtractFacts(context.Background(), req)
	if err != nil {
		t.Fatalf("ExtractFacts failed: %v", err)
	}

	if resp.Values[model.FieldBaseYear] != "2016" {
		t.Errorf("Unexpected base year: %q", resp.Values[model.FieldBaseYear])
	}
	if _, ok := resp.Values[model.FieldSecurityDeposit]; ok {
		t.Error("Null field must be treated as not found")
	}
	if resp.TokensUsed != 100 {
		t.Errorf("Unexpected token count: %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_ExtractFacts_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "I could not find structured facts, sorry.",
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.ExtractFacts(context.Background(), ExtractRequest{
		Text:    "text",
		Missing: []model.FieldKind{model.FieldBaseYear},
	})
	if err != nil {
		t.Fatalf("Malformed output must not fail the call: %v", err)
	}
	if len(resp.Values) != 0 {
		t.Errorf("Expected no values from malformed output, got %v", resp.Values)
	}
}

func TestOpenAIProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	// Empty provider name means disabled
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error for empty provider, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil provider when disabled")
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "openai", APIKey: "k"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("Unexpected openai factory result: %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "ollama", Model: "llama3.1:8b"})
	if err != nil || p == nil || p.Name() != "ollama" {
		t.Errorf("Unexpected ollama factory result: %v, %v", p, err)
	}
}
