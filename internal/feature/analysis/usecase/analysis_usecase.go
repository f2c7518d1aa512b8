package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"leadfinder/internal/feature/analysis/domain/entity"
)

const (
	// MaxDescriptionLength はプロダクト説明の最大文字数（rune数）です。
	MaxDescriptionLength = 4000

	// marketSectionHeader と signalSectionHeader はモデル出力の区切りです。
	// プロンプトでこの見出しを要求し、パース時に同じ文字列で分割します。
	marketSectionHeader = "1. Target Market Characteristics:"
	signalSectionHeader = "2. Key Buying Signals:"

	analysisSystemPrompt = "You are a market research expert specializing in B2B markets."

	analysisPromptTemplate = `Analyze the ideal target market for %s's product: %s

%s

Please provide a detailed analysis in two parts:

1. Target Market Characteristics:
- Company sizes
- Industry verticals
- Common pain points
- Technical requirements
- Budget considerations

2. Key Buying Signals:
- Trigger events
- Business changes
- Industry trends
- Technology adoption patterns
- Growth indicators

Format as bullet points for each section.`
)

// TextGenerator はプロンプトからテキストを生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextGenerator interface {
	// Generate はシステム指示とプロンプトから応答テキストを生成します。
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// analysisUsecase はプロダクト分析のビジネスロジックを提供します。
type analysisUsecase struct {
	generator TextGenerator
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(g TextGenerator) *analysisUsecase {
	return &analysisUsecase{generator: g}
}

// AnalyzeProduct はプロダクト情報から市場分析を生成します。
// モデル出力が2セクション構成になっていない場合はErrUnparsableAnalysisを返します。
func (u *analysisUsecase) AnalyzeProduct(ctx context.Context, product entity.Product) (*entity.MarketAnalysis, error) {
	if product.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if product.Description == "" {
		return nil, fmt.Errorf("product description is required")
	}
	if utf8.RuneCountInString(product.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: limit is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}

	prompt := fmt.Sprintf(analysisPromptTemplate, product.CompanyName, product.Name, product.Description)
	raw, err := u.generator.Generate(ctx, analysisSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("market analysis failed for %q: %w", product.Name, err)
	}

	market, signals, err := parseSections(raw)
	if err != nil {
		return nil, err
	}

	return &entity.MarketAnalysis{
		Raw:           strings.TrimSpace(raw),
		TargetMarket:  market,
		BuyingSignals: signals,
	}, nil
}

// parseSections は2セクション構成の分析テキストから箇条書きを抽出します。
func parseSections(raw string) (market, signals []string, err error) {
	parts := strings.SplitN(raw, signalSectionHeader, 2)
	if len(parts) != 2 {
		return nil, nil, ErrUnparsableAnalysis
	}

	marketText := strings.ReplaceAll(parts[0], marketSectionHeader, "")
	market = extractBullets(marketText)
	signals = extractBullets(parts[1])

	if len(market) == 0 || len(signals) == 0 {
		return nil, nil, ErrUnparsableAnalysis
	}
	return market, signals, nil
}

// extractBullets は行頭が "-" または "*" の行を箇条書きとして抽出します。
func extractBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
