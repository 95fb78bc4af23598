package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenParams are the generation knobs forwarded to the upstream model.
// Zero values mean "omit" for the penalties and temperature.
type GenParams struct {
	Temperature      float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
}

type Reply struct {
	Content     string
	TotalTokens int
}

// Provider is a single request/response exchange with a hosted model:
// ordered messages in, generated text plus token count out. Failures are
// classified via the sentinels in errors.go.
type Provider interface {
	Chat(ctx context.Context, messages []Message, params GenParams) (*Reply, error)
}
