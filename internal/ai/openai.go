package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode"
)

const (
	openAIConnectTimeout = 20 * time.Second
	openAIReadTimeout    = 60 * time.Second
)

// OpenAIProvider talks to any /chat/completions-compatible endpoint.
// Connection establishment is bounded by the dialer; the whole exchange is
// bounded by a per-request deadline. No retries — the caller owns retry
// policy.
type OpenAIProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: openAIConnectTimeout}).DialContext,
			},
		},
	}
}

type openAIMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatReq struct {
	Model            string      `json:"model"`
	Messages         []openAIMsg `json:"messages"`
	Temperature      float64     `json:"temperature,omitempty"`
	MaxTokens        int         `json:"max_tokens,omitempty"`
	PresencePenalty  float64     `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64     `json:"frequency_penalty,omitempty"`
}

type openAIChatResp struct {
	Choices []struct {
		Message openAIMsg `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ValidateKey reports the configuration errors that must surface before any
// upstream call is attempted.
func (p *OpenAIProvider) ValidateKey() error {
	key := p.APIKey
	if strings.TrimSpace(key) == "" {
		return ErrNotConfigured
	}
	for _, r := range key {
		if unicode.IsSpace(r) {
			return ErrBadAPIKey
		}
	}
	return nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, params GenParams) (*Reply, error) {
	if p.Client == nil {
		return nil, errors.New("openai: http client is nil")
	}
	if err := p.ValidateKey(); err != nil {
		return nil, err
	}
	model := strings.TrimSpace(p.Model)
	if model == "" {
		return nil, errors.New("openai: model is required")
	}

	reqBody := openAIChatReq{
		Model:            model,
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		PresencePenalty:  params.PresencePenalty,
		FrequencyPenalty: params.FrequencyPenalty,
		Messages: func() []openAIMsg {
			out := make([]openAIMsg, 0, len(messages))
			for _, m := range messages {
				out = append(out, openAIMsg{Role: m.Role, Content: m.Content})
			}
			return out
		}(),
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, openAIReadTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(p.BaseURL, "/"))
	req, err := http.NewRequestWithContext(cctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
		default:
			return nil, &APIStatusError{Status: resp.StatusCode, Message: msg}
		}
	}

	var decoded openAIChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, classifyTransportErr(err)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, &APIStatusError{Status: resp.StatusCode, Message: decoded.Error.Message}
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("openai: empty response")
	}

	return &Reply{
		Content:     strings.TrimSpace(decoded.Choices[0].Message.Content),
		TotalTokens: decoded.Usage.TotalTokens,
	}, nil
}

// classifyTransportErr separates dial failures from read timeouts.
// Dial errors (including dial timeouts) count as connection failures;
// anything that timed out after the connection was up is a read timeout.
func classifyTransportErr(err error) error {
	var op *net.OpError
	if errors.As(err, &op) && op.Op == "dial" {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrReadTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrReadTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
