package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"frontdesk/config"
)

// Completion is one generative answer with its token cost.
type Completion struct {
	Text       string
	TokensUsed int
}

// Oracle is the generative fallback. Implementations must respect the
// context deadline; the orchestrator budgets a short timeout per call.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

// GeminiOracle answers through Google's Gemini API.
type GeminiOracle struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

func NewGeminiOracle(apiKey string) (*GeminiOracle, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	name := config.AppConfig.GeminiModel
	if name == "" {
		name = "models/gemini-1.5-flash"
	}
	timeout := time.Duration(config.AppConfig.OracleTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GeminiOracle{model: client.GenerativeModel(name), timeout: timeout}, nil
}

func (g *GeminiOracle) Complete(ctx context.Context, prompt string) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	completion := &Completion{Text: strings.TrimSpace(sb.String())}
	if resp.UsageMetadata != nil {
		completion.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	return completion, nil
}
