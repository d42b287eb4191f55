package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiGeneratorClient implements GeneratorClientInterface on Google's
// Gemini models. Used when GENERATOR_PROVIDER=gemini; the free-tier flash
// model is the default.
type GeminiGeneratorClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

func NewGeminiGeneratorClient(apiKey, model string) (GeneratorClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGeneratorClient{
		client:         client,
		model:          model,
		embeddingModel: "text-embedding-004",
	}, nil
}

func (c *GeminiGeneratorClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", errors.New("gemini returned no text parts")
	}
	return out, nil
}

func (c *GeminiGeneratorClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	em := c.client.EmbeddingModel(c.embeddingModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if resp.Embedding == nil {
		return pgvector.Vector{}, errors.New("gemini returned no embedding")
	}
	return pgvector.NewVector(resp.Embedding.Values), nil
}
