package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prepmate/internal/config"
)

func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(srvURL string) *Client {
	return NewClient(config.AIConfig{
		BaseURL: srvURL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestGenerateStandardQuestions(t *testing.T) {
	srv := chatStub(t, `{"hrQuestions":["q1"],"technicalQuestions":["q2"],"behavioralQuestions":["q3"],"aptitudeQuestions":["q4"]}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.GenerateStandardQuestions(context.Background(), "Backend Engineer", 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.HRQuestions) != 1 || out.HRQuestions[0] != "q1" {
		t.Fatalf("unexpected hr questions: %v", out.HRQuestions)
	}
	if len(out.AptitudeQuestions) != 1 {
		t.Fatalf("unexpected aptitude questions: %v", out.AptitudeQuestions)
	}
}

func TestGenerateStandardQuestions_StripsCodeFences(t *testing.T) {
	srv := chatStub(t, "```json\n{\"hrQuestions\":[\"q1\"],\"technicalQuestions\":[],\"behavioralQuestions\":[],\"aptitudeQuestions\":[]}\n```")
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.GenerateStandardQuestions(context.Background(), "Backend Engineer", 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.HRQuestions) != 1 {
		t.Fatalf("expected fenced JSON to decode, got %+v", out)
	}
}

func TestAnalyzeAnswer_ClampsScore(t *testing.T) {
	srv := chatStub(t, `{"feedback":"good","score":140,"grammarFeedback":"fine","keywordFeedback":"ok"}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	fb, err := c.AnalyzeAnswer(context.Background(), "Tell me about a project", "I led a team of 5", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fb.Score != 100 {
		t.Fatalf("expected score clamped to 100, got %v", fb.Score)
	}
}

func TestCompleteJSON_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.GenerateResumeQuestions(context.Background(), "resume text", 5); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}
