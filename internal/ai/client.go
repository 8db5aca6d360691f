// Package ai talks to the configured LLM provider to generate cover-letter
// text. It is the one real network call in the application; everything above
// it treats the latency as unbounded and cancels through the context.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/config"
	"github.com/worklinkhq/worklink/internal/letter"
	"github.com/worklinkhq/worklink/pkg/models"
)

// Client generates cover letters through the provider named in the config.
// It implements letter.Generator.
type Client struct {
	cfg     *config.Config
	http    *resty.Client
	profile *models.Profile
	log     zerolog.Logger
}

// NewClient returns a client for the configured provider.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: resty.New().SetTimeout(90 * time.Second),
		log:  log,
	}
}

// SetProfile attaches the user's profile so prompts can be personalized.
// Optional; prompts degrade gracefully without it.
func (c *Client) SetProfile(p *models.Profile) { c.profile = p }

// Generate produces the letter text for req.
func (c *Client) Generate(ctx context.Context, req letter.Request) (string, error) {
	prompt := c.buildPrompt(req)

	switch c.cfg.AIProvider {
	case "openai":
		return c.generateWithOpenAI(ctx, prompt)
	case "anthropic":
		return c.generateWithAnthropic(ctx, prompt)
	case "ollama":
		return c.generateWithOllama(ctx, prompt)
	case "lmstudio":
		return c.generateWithLMStudio(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported AI provider: %s", c.cfg.AIProvider)
	}
}

// buildPrompt creates the prompt for cover letter generation
func (c *Client) buildPrompt(req letter.Request) string {
	name := "the applicant"
	background := ""
	if c.profile != nil {
		name = c.profile.Name
		background = fmt.Sprintf(`
Applicant Details:
- Name: %s
- Headline: %s
- Location: %s
- Background: %s`, c.profile.Name, c.profile.Headline, c.profile.Location, c.profile.Bio)
	}

	return fmt.Sprintf(`Generate a professional cover letter for the following job application.

Job Details:
- Title: %s
- Company: %s
- Resume on file: %s
%s

Write a compelling, personalized cover letter that:
1. Demonstrates enthusiasm for the role and company
2. Highlights relevant skills and experience from the applicant's background
3. Is professional yet engaging
4. Is 3-4 paragraphs long
5. Signs off as %s and does not include placeholders like [Your Name] or [Date]

Return only the cover letter text, no additional commentary.`,
		req.JobTitle, req.CompanyName, req.ResumeRef, background, name)
}

func (c *Client) generateWithOpenAI(ctx context.Context, prompt string) (string, error) {
	if c.cfg.OpenAIKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured. Run: worklink config set --key openai_key --value YOUR_KEY")
	}

	model := c.cfg.DefaultModel
	if model == "" {
		model = "gpt-4"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.cfg.OpenAIKey).
		SetBody(map[string]interface{}{
			"model": model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.7,
			"max_tokens":  1000,
		}).
		Post("https://api.openai.com/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("OpenAI API error: %s: %w", resp.String(), app.ErrOperationFailed)
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("unexpected response format from OpenAI")
	}
	return strings.TrimSpace(content.String()), nil
}

func (c *Client) generateWithAnthropic(ctx context.Context, prompt string) (string, error) {
	if c.cfg.AnthropicKey == "" {
		return "", fmt.Errorf("Anthropic API key not configured. Run: worklink config set --key anthropic_key --value YOUR_KEY")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.cfg.AnthropicKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(map[string]interface{}{
			"model":      "claude-3-5-sonnet-20241022",
			"max_tokens": 1024,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("https://api.anthropic.com/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("Anthropic API error: %s: %w", resp.String(), app.ErrOperationFailed)
	}

	text := gjson.GetBytes(resp.Body(), "content.0.text")
	if !text.Exists() {
		return "", fmt.Errorf("unexpected response format from Anthropic")
	}
	return strings.TrimSpace(text.String()), nil
}

func (c *Client) generateWithOllama(ctx context.Context, prompt string) (string, error) {
	url := c.cfg.OllamaURL
	if url == "" {
		url = "http://localhost:11434"
	}
	model := c.cfg.DefaultModel
	if model == "" {
		model = "llama3.2"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"model":  model,
			"prompt": prompt,
			"stream": false,
		}).
		Post(url + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("Ollama API error: %s: %w", resp.String(), app.ErrOperationFailed)
	}

	response := gjson.GetBytes(resp.Body(), "response")
	if !response.Exists() {
		return "", fmt.Errorf("unexpected response format from Ollama")
	}
	return strings.TrimSpace(response.String()), nil
}

func (c *Client) generateWithLMStudio(ctx context.Context, prompt string) (string, error) {
	url := c.cfg.LMStudioURL
	if url == "" {
		url = "http://localhost:1234"
	}
	model := c.cfg.DefaultModel
	if model == "" {
		model = "local-model"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"model": model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.7,
			"max_tokens":  1000,
		}).
		Post(url + "/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("lmstudio request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("LMStudio API error: %s: %w", resp.String(), app.ErrOperationFailed)
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("unexpected response format from LMStudio")
	}
	return strings.TrimSpace(content.String()), nil
}
