// Package gemini はGoogle Gemini APIを使用したテキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	analysisusecase "leadfinder/internal/feature/analysis/usecase"
	leadsusecase "leadfinder/internal/feature/leads/usecase"
	researchusecase "leadfinder/internal/feature/research/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// temperature は市場調査系プロンプトで使用する生成温度です。
	temperature float32 = 0.7
)

// ErrMissingAPIKey はAPIキー未設定時にクライアント生成前に返されるエラーです。
// モデル呼び出しが一度も行われる前に起動段階で検出されます。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Generator はGoogle Gemini APIを使用してテキストを生成します。
type Generator struct {
	client *genai.Client
	model  string
}

// Generatorが各フィーチャーのTextGeneratorを実装していることをコンパイル時に検証します。
var (
	_ analysisusecase.TextGenerator = (*Generator)(nil)
	_ researchusecase.TextGenerator = (*Generator)(nil)
	_ leadsusecase.TextGenerator    = (*Generator)(nil)
)

// NewGenerator はGeneratorの新しいインスタンスを生成します。
// APIキーが空の場合はクライアントを生成せずにErrMissingAPIKeyを返します。
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}, nil
}

// Generate はシステム指示とプロンプトから応答テキストを生成します。
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
