package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	aiModel   = "gemini-1.5-flash"
	aiTimeout = 10 * time.Second
)

// aiProvider asks Gemini a one-shot question. The answer lands on the
// clipboard because a launcher row is too small to read prose in.
type aiProvider struct {
	apiKey string
}

func NewAI(deps Deps) (Provider, error) {
	return &aiProvider{apiKey: deps.Config.GeminiAPIKey}, nil
}

func (*aiProvider) Mode() Mode         { return ModeAI }
func (*aiProvider) Prefixes() []string { return []string{"ask", "ai", "?"} }
func (*aiProvider) Synthetic() bool    { return true }

func (p *aiProvider) List(_ context.Context, query string) ([]Result, error) {
	if p.apiKey == "" {
		return []Result{{
			Title:    "Gemini API key not configured",
			Subtitle: "Run beacon --setup or set gemini_api_key in config.json",
			Icon:     "dialog-warning",
			Score:    1.0,
			Action:   Action{Kind: ActionNone},
		}}, nil
	}

	question := strings.TrimSpace(query)
	if question == "" {
		return []Result{{
			Title:    "Ask Gemini",
			Subtitle: "Type a question and press enter",
			Icon:     "dialog-question",
			Score:    1.0,
			Action:   Action{Kind: ActionNone},
		}}, nil
	}

	return []Result{{
		Title:    "Ask Gemini: " + question,
		Subtitle: "The answer is copied to the clipboard",
		Icon:     "dialog-question",
		Score:    1.0,
		Action:   Action{Kind: ActionInvoke, InvokeMode: ModeAI, InvokeID: "ask", InvokeArg: question},
	}}, nil
}

func (p *aiProvider) Invoke(id, arg string) error {
	if id != "ask" {
		return fmt.Errorf("unknown ai operation: %s", id)
	}
	answer, err := p.ask(arg)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(answer); err != nil {
		return fmt.Errorf("could not copy answer: %w", err)
	}
	return nil
}

func (p *aiProvider) ask(question string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("could not create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(aiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", fmt.Errorf("could not generate answer: %w", err)
	}
	return flattenResponse(resp), nil
}

func flattenResponse(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
