package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"leadfinder/internal/feature/research/domain/entity"
	"leadfinder/internal/feature/research/signal"
)

const (
	// DefaultMaxCompanies は候補企業数のデフォルト上限です。
	DefaultMaxCompanies = 5
	// MaxCompaniesLimit は候補企業数の絶対上限です。
	MaxCompaniesLimit = 20
)

// excludedCompanies は候補として返さない大手金融機関のリストです。
var excludedCompanies = []string{
	"JPMorgan Chase", "Bank of America", "Citigroup", "Wells Fargo",
	"Goldman Sachs", "Morgan Stanley", "HSBC", "Barclays",
	"Deutsche Bank", "UBS", "Credit Suisse", "BNP Paribas",
}

// Query はCompany Researcherへの検索条件です。
type Query struct {
	ProductName    string // 対象プロダクト名
	CompanyName    string // プロダクト提供元の企業名
	CompanyWebsite string // プロダクト提供元のWebサイトURL（任意）
	MarketAnalysis string // 市場分析テキスト（ユーザー編集後のものでもよい）
	Location       string // 希望する所在地（任意）
	CompanyTypes   string // 希望する企業タイプ（任意）
	MaxCompanies   int    // 候補企業数の上限（0ならデフォルト）

	// Progress は企業ごとの進捗通知コールバックです（任意）。
	// キャッシュキーには含まれません。
	Progress func(current, total int)
}

// TextGenerator はプロンプトからテキストを生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// CompanyLookup は企業に関する公開情報テキストを取得するインターフェースです。
// スクレイピングによる補助的な情報源であり、実装がnilの場合はスキップされます。
type CompanyLookup interface {
	// CompanyText は企業名で検索した公開情報テキストを返します。
	CompanyText(ctx context.Context, companyName string) (string, error)
	// PageText は指定URLのページ本文テキストを返します。
	PageText(ctx context.Context, url string) (string, error)
}

// Finder は候補企業の検索インターフェースです。キャッシュデコレーターと
// ハンドラーの双方がこのインターフェースを介してusecaseを利用します。
type Finder interface {
	FindCompanies(ctx context.Context, q Query) ([]entity.CandidateCompany, error)
}

// researchUsecase は候補企業調査のビジネスロジックを提供します。
type researchUsecase struct {
	generator TextGenerator
	lookup    CompanyLookup // nilの場合はスクレイピングなし
}

// researchUsecaseがFinderを実装していることをコンパイル時に検証します。
var _ Finder = (*researchUsecase)(nil)

// NewResearchUsecase はresearchUsecaseの新しいインスタンスを生成します。
// lookupはnilでもよく、その場合はWeb上の補助情報を使用しません。
func NewResearchUsecase(g TextGenerator, lookup CompanyLookup) *researchUsecase {
	return &researchUsecase{generator: g, lookup: lookup}
}

// FindCompanies は市場分析に適合する候補企業を調査します。
// 企業ごとに適合理由・シグナル・バリュープロポジションを生成し、
// 適合理由が得られなかった企業は結果から除外します。
// モデル呼び出しの失敗はその時点で実行を中断してエラーを返します。
func (u *researchUsecase) FindCompanies(ctx context.Context, q Query) ([]entity.CandidateCompany, error) {
	if q.ProductName == "" {
		return nil, ErrMissingProduct
	}
	if strings.TrimSpace(q.MarketAnalysis) == "" {
		return nil, ErrMissingAnalysis
	}

	names, err := u.listCandidates(ctx, q)
	if err != nil {
		return nil, err
	}

	// 提供元サイトが分かっている場合は本文を取得し、適合評価の補足にします。
	// 取得の失敗は警告ログのみで処理を継続します。
	productContext := ""
	if u.lookup != nil && q.CompanyWebsite != "" {
		text, err := u.lookup.PageText(ctx, q.CompanyWebsite)
		if err != nil {
			slog.Warn("提供元サイトの取得に失敗", "url", q.CompanyWebsite, "error", err)
		} else {
			productContext = text
		}
	}

	companies := make([]entity.CandidateCompany, 0, len(names))
	for i, name := range names {
		if q.Progress != nil {
			q.Progress(i+1, len(names))
		}

		reasons, err := u.evaluateFit(ctx, name, q, productContext)
		if err != nil {
			return nil, err
		}
		if len(reasons) == 0 {
			slog.Info("候補企業をスキップ（適合理由なし）", "company", name)
			continue
		}

		signals, detected, err := u.companySignals(ctx, name)
		if err != nil {
			return nil, err
		}

		valueProp, err := u.valueProposition(ctx, name, reasons, signals)
		if err != nil {
			return nil, err
		}

		companies = append(companies, entity.CandidateCompany{
			Name:             name,
			MatchReasons:     reasons,
			RecentSignals:    signals,
			DetectedSignals:  detected,
			ValueProposition: valueProp,
		})
	}

	return companies, nil
}

// listCandidates は検索条件に合う候補企業名の一覧をモデルから取得します。
func (u *researchUsecase) listCandidates(ctx context.Context, q Query) ([]string, error) {
	limit := q.MaxCompanies
	if limit <= 0 {
		limit = DefaultMaxCompanies
	}
	if limit > MaxCompaniesLimit {
		limit = MaxCompaniesLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, listPromptHeader, limit)
	if q.Location != "" || q.CompanyTypes != "" {
		b.WriteString("\nPreferences:")
		if q.Location != "" {
			fmt.Fprintf(&b, "\n- Location: %s", q.Location)
		}
		if q.CompanyTypes != "" {
			fmt.Fprintf(&b, "\n- Company Types: %s", q.CompanyTypes)
		}
	} else {
		b.WriteString("\nFocus on public companies across different industries.")
	}
	b.WriteString("\nExclude major banks and financial institutions.")

	raw, err := u.generator.Generate(ctx, listSystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("candidate listing failed: %w", err)
	}

	var names []string
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if name == "" || isExcluded(name) {
			continue
		}
		names = append(names, name)
		if len(names) >= limit {
			break
		}
	}
	return names, nil
}

// evaluateFit は企業が市場分析にどの程度適合するかの理由を取得します。
// productContextが空でない場合、提供元サイトから取得したプロダクト情報を
// プロンプトに補足します。
func (u *researchUsecase) evaluateFit(ctx context.Context, company string, q Query, productContext string) ([]string, error) {
	prompt := fmt.Sprintf(evaluatePromptTemplate, company, q.ProductName, q.MarketAnalysis, company)
	if productContext != "" {
		prompt += fmt.Sprintf(evaluateContextTemplate, q.ProductName, productContext)
	}
	raw, err := u.generator.Generate(ctx, evaluateSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("fit evaluation failed for %q: %w", company, err)
	}
	return extractBullets(raw), nil
}

// companySignals は企業の最近のシグナルを取得します。CompanyLookupが設定されて
// いる場合はスクレイピングしたテキストをプロンプトに補足し、構造化シグナルの
// 抽出にも使用します。スクレイピングの失敗は警告ログのみで処理を継続します。
func (u *researchUsecase) companySignals(ctx context.Context, company string) ([]string, []entity.DetectedSignal, error) {
	prompt := fmt.Sprintf(signalsPromptTemplate, company)

	var detected []entity.DetectedSignal
	if u.lookup != nil {
		text, err := u.lookup.CompanyText(ctx, company)
		if err != nil {
			slog.Warn("企業情報の取得に失敗", "company", company, "error", err)
		} else if text != "" {
			prompt += fmt.Sprintf(signalsContextTemplate, company, text)
			detected = signal.Detect(text)
		}
	}

	raw, err := u.generator.Generate(ctx, signalsSystemPrompt, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("signal lookup failed for %q: %w", company, err)
	}
	return extractBullets(raw), detected, nil
}

// valueProposition は適合理由とシグナルからバリュープロポジションを生成します。
func (u *researchUsecase) valueProposition(ctx context.Context, company string, reasons, signals []string) (string, error) {
	prompt := fmt.Sprintf(valuePromptTemplate, company, asBullets(reasons), asBullets(signals))
	raw, err := u.generator.Generate(ctx, valueSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("value proposition failed for %q: %w", company, err)
	}
	return strings.TrimSpace(raw), nil
}

// isExcluded は除外リストとの大文字小文字を無視した一致を判定します。
func isExcluded(name string) bool {
	for _, ex := range excludedCompanies {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
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

// asBullets は文字列スライスを箇条書きテキストに変換します。
func asBullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return b.String()
}
