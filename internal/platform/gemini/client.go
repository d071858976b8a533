package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/env"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/errdefs"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/httpx"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/platform/ctxutil"
)

// Client is the model gateway. It accepts a prompt plus optional prior turns
// and returns the raw text production of the backend; it owns no conversation
// state and makes no structural guarantee about the returned text.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, history []domain.Turn) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	serviceLog := log.With("service", "GeminiClient")

	apiKey := strings.TrimSpace(env.GetEnv("GEMINI_API_KEY", "", log))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := strings.TrimRight(env.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com", log), "/")
	model := strings.TrimSpace(env.GetEnv("GEMINI_MODEL", "gemini-1.5-flash", log))

	timeoutSec := env.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 60, log)
	if timeoutSec <= 0 {
		timeoutSec = 60
	}
	maxRetries := env.GetEnvAsInt("GEMINI_MAX_RETRIES", 2, log)
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &client{
		log:        serviceLog,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *geminiHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

func (c *client) GenerateContent(ctx context.Context, prompt string, history []domain.Turn) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", errdefs.ErrInvalidArgument)
	}

	// Prior turns pass through in order; only text parts travel to the
	// backend (attachment refs live in the CDN, not in the prompt).
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		parts := make([]part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, part{Text: p.Text})
		}
		contents = append(contents, content{Role: turn.Role, Parts: parts})
	}
	contents = append(contents, content{Role: domain.RoleUser, Parts: []part{{Text: prompt}}})

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)

	var resp generateContentResponse
	if err := c.do(ctx, path, generateContentRequest{Contents: contents}, &resp); err != nil {
		return "", fmt.Errorf("%w: %s", errdefs.ErrGenerationFailed, err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", errdefs.ErrGenerationFailed, resp.PromptFeedback.BlockReason)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text in response", errdefs.ErrGenerationFailed)
	}
	return text, nil
}

func extractText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var out strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String()
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), "POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("gemini decode error: %w", uErr)
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("Gemini request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("retries exhausted")
}
