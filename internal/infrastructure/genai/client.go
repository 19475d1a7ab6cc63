package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"prepmate/internal/config"
	"prepmate/internal/domain/interview"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

// StandardQuestions is the four-category batch returned by the question
// generator. Each slice should hold the requested count but may hold fewer.
type StandardQuestions struct {
	HRQuestions         []string `json:"hrQuestions"`
	TechnicalQuestions  []string `json:"technicalQuestions"`
	BehavioralQuestions []string `json:"behavioralQuestions"`
	AptitudeQuestions   []string `json:"aptitudeQuestions"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint for question
// generation and answer analysis.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(cfg config.AIConfig, logger *log.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) GenerateStandardQuestions(ctx context.Context, jobRole string, count int) (StandardQuestions, error) {
	var out StandardQuestions
	if err := c.completeJSON(ctx, standardQuestionsPrompt(jobRole, count), &out); err != nil {
		return StandardQuestions{}, err
	}
	return out, nil
}

func (c *Client) GenerateResumeQuestions(ctx context.Context, resumeText string, count int) ([]string, error) {
	var out struct {
		Questions []string `json:"questions"`
	}
	if err := c.completeJSON(ctx, resumeQuestionsPrompt(resumeText, count), &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *Client) AnalyzeAnswer(ctx context.Context, question, answer, resume string) (interview.Feedback, error) {
	var out interview.Feedback
	if err := c.completeJSON(ctx, analyzeAnswerPrompt(question, answer, resume), &out); err != nil {
		return interview.Feedback{}, err
	}
	if out.Score < 0 {
		out.Score = 0
	}
	if out.Score > 100 {
		out.Score = 100
	}
	return out, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *Client) completeJSON(ctx context.Context, prompt string, out any) error {
	if c == nil || c.client == nil {
		return errors.New("nil genai client")
	}

	body := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.4,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[GenAI] completion error status=%d body=%q", resp.StatusCode, bodyStr)
		}
		return fmt.Errorf("genai completion failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return err
	}
	if cr.Error != nil {
		return fmt.Errorf("genai completion failed: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return errors.New("genai completion returned no choices")
	}

	content := stripCodeFences(cr.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("genai completion returned invalid JSON: %w", err)
	}
	return nil
}

// stripCodeFences removes the ```json fences models wrap JSON payloads in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
