package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// GeneratorClientInterface abstracts the AI provider behind workout and diet
// generation so services can be tested with a stub and the provider can be
// swapped (OpenAI or Gemini) by configuration.
type GeneratorClientInterface interface {
	// GenerateJSON sends a structured prompt and returns the raw model output,
	// which callers clean and validate before parsing.
	GenerateJSON(ctx context.Context, prompt string) (string, error)

	// GetEmbedding embeds text for similarity search.
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

type OpenAIGeneratorClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIGeneratorClient(apiKey, model string) (GeneratorClientInterface, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGeneratorClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *OpenAIGeneratorClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a fitness assistant. Respond with JSON only, no prose.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIGeneratorClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, errors.New("openai returned no embedding")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// CleanModelJSON strips markdown fences and surrounding prose that models
// sometimes wrap around JSON payloads.
func CleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	// Fall back to the outermost braces when the model added prose anyway.
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		start := strings.IndexAny(s, "{[")
		if start >= 0 {
			end := strings.LastIndexAny(s, "}]")
			if end > start {
				s = s[start : end+1]
			}
		}
	}
	return s
}
