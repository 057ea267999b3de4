// Package llm assigns a category from the fixed vocabulary to a
// transaction using a Gemini model.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Categorizer calls Gemini to pick one category for a transaction. The
// category vocabulary is injected at construction and embedded in every
// prompt.
type Categorizer struct {
	client     *genai.Client
	model      string
	categories []string
	timeout    time.Duration
}

// NewCategorizer creates a Gemini-backed categorizer. Credentials come from
// the environment (GEMINI_API_KEY or application default credentials).
func NewCategorizer(ctx context.Context, model string, categories []string, timeout time.Duration) (*Categorizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}
	return &Categorizer{
		client:     client,
		model:      model,
		categories: categories,
		timeout:    timeout,
	}, nil
}

// Categorize returns the category for one transaction. Any transport or
// model failure, including an answer outside the vocabulary, is an error;
// callers degrade the record to uncategorized rather than aborting.
func (c *Categorizer) Categorize(ctx context.Context, description string, amount float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildCategoryPrompt(description, amount, c.categories)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	answer := cleanAnswer(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("llm: empty response from model")
	}

	for _, cat := range c.categories {
		if strings.EqualFold(answer, cat) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("llm: model answered outside the vocabulary: %q", answer)
}

// cleanAnswer strips the markdown fences, quotes, and label prefixes models
// add despite instructions, keeping only the first non-empty line.
func cleanAnswer(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "Category:")
		line = strings.Trim(line, ` "'`)
		return line
	}
	return ""
}
