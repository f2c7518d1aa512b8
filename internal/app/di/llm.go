// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"leadfinder/internal/platform/llm/gemini"
)

// NewGenerator creates a Gemini text generator from environment configuration.
func NewGenerator(ctx context.Context) (*gemini.Generator, error) {
	cfg := gemini.LoadConfig()
	return gemini.NewGenerator(ctx, cfg)
}
