package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"studybuddy/internal/config"
)

func TestNewGenerator(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.Config
		unavailable bool
		wantErr     bool
	}{
		{
			name:        "no key",
			cfg:         config.Config{Provider: config.ProviderGemini},
			unavailable: true,
		},
		{
			name:        "placeholder key",
			cfg:         config.Config{Provider: config.ProviderGemini, GeminiKey: "your_actual_api_key_here"},
			unavailable: true,
		},
		{
			name:        "openai without its own key",
			cfg:         config.Config{Provider: config.ProviderOpenAI, GeminiKey: "gm-key"},
			unavailable: true,
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{Provider: "claude", GeminiKey: "gm-key"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), tc.cfg)
			if gen != nil {
				t.Errorf("expected no generator, got %T", gen)
			}
			if tc.unavailable && !errors.Is(err, ErrAIUnavailable) {
				t.Errorf("expected ErrAIUnavailable, got %v", err)
			}
			if tc.wantErr && (err == nil || errors.Is(err, ErrAIUnavailable)) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestNewGenerator_Providers(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.Config{
		Provider:       config.ProviderOpenAI,
		OpenAIKey:      "sk-test",
		OpenAIModel:    "gpt-4o-mini",
		OpenAIEndpoint: "http://localhost:1/v1",
	})
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, ok := gen.(*OpenAIGenerator); !ok {
		t.Errorf("expected *OpenAIGenerator, got %T", gen)
	}

	gen, err = NewGenerator(context.Background(), config.Config{
		Provider:    config.ProviderGemini,
		GeminiKey:   "gm-test",
		GeminiModel: "models/gemini-2.0-flash-001",
	})
	if err != nil {
		t.Fatalf("gemini: %v", err)
	}
	gemini, ok := gen.(*GeminiGenerator)
	if !ok {
		t.Fatalf("expected *GeminiGenerator, got %T", gen)
	}
	gemini.Close()
}

func chatServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{
			name: "content",
			body: `{"choices":[{"index":0,"message":{"role":"assistant","content":"Q: What is a cell?\nA: The unit of life."},"finish_reason":"stop"}]}`,
			want: "Q: What is a cell?\nA: The unit of life.",
		},
		{
			name:    "no choices",
			body:    `{"choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "empty content",
			body:    `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`,
			wantErr: "empty content",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := chatServer(t, tc.body)
			gen := NewOpenAIGenerator("test-key", "gpt-4o-mini", srv.URL)

			got, err := gen.Generate(context.Background(), "prompt")
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v (text %q)", tc.wantErr, err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	testCases := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: true,
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
			}},
			wantErr: true,
		},
		{
			name: "only non-text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png", Data: []byte{1}}}}},
			}},
			wantErr: true,
		},
		{
			name: "whitespace text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("  \n")}}},
			}},
			wantErr: true,
		},
		{
			name: "text parts joined",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("# Cells\n"), genai.Text("- units of life")}}},
			}},
			want: "# Cells\n- units of life",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseText(tc.resp)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got text %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// partlessGenerator answers like Gemini does when a candidate ends without
// producing any content.
type partlessGenerator struct{}

func (partlessGenerator) Generate(context.Context, string) (string, error) {
	return responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{FinishReason: genai.FinishReasonOther},
	}})
}

func TestStudyService_EmptyModelOutput(t *testing.T) {
	svc := NewStudyService(partlessGenerator{}, zap.NewNop())
	got := svc.Process(context.Background(), "photosynthesis notes")
	if !reflect.DeepEqual(got, CannedBundle(true)) {
		t.Errorf("expected AI-attempted bundle, got %+v", got)
	}
}
