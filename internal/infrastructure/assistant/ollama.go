// Package assistant implements the guidance chat pipeline: a staged
// state graph over a local LLM with keyword retrieval.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	infraconfig "github.com/legallink/backend/internal/infrastructure/config"
)

// LLM generates a completion for a prompt. Satisfied by the Ollama
// adapter in production and a canned fake in tests.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OllamaLLM reaches a local Ollama server through langchaingo
type OllamaLLM struct {
	llm *ollama.LLM
}

// NewOllamaLLM creates the client from configuration
func NewOllamaLLM(cfg *infraconfig.AssistantConfig) (*OllamaLLM, error) {
	if cfg == nil {
		return nil, errors.New("assistant configuration is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("assistant model is required")
	}

	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.OllamaURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.OllamaURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaLLM{llm: llm}, nil
}

// Generate runs one completion
func (o *OllamaLLM) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("ollama completion failed: %w", err)
	}
	return completion, nil
}

var _ LLM = (*OllamaLLM)(nil)
