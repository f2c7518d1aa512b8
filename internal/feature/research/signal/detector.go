// Package signal は企業に関するテキストからビジネスシグナルを抽出します。
package signal

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"leadfinder/internal/feature/research/domain/entity"
)

// シグナルカテゴリ名。検出結果とリードスコアリングの双方で使用します。
const (
	CategoryLeadership  = "leadership_changes"
	CategoryGrowth      = "growth_signals"
	CategoryTechnology  = "technology_signals"
	CategoryFinancial   = "financial_signals"
	CategoryRisk        = "risk_signals"
	CategoryOperational = "operational_signals"
)

// contextWindow はマッチ前後に含めるコンテキストのバイト数です。
const contextWindow = 50

// patterns はカテゴリごとの検出パターンです。パッケージ初期化時にコンパイルされます。
var patterns = map[string][]*regexp.Regexp{
	CategoryLeadership: compileAll(
		`(?i)(new|appoint|hire|join).{0,20}(CEO|CTO|CFO|COO|president|director|executive)`,
		`(?i)(leadership|management).{0,20}(change|transition|update)`,
		`(?i)(promot|step.{0,5}down|resign).{0,20}(executive|leader|director)`,
	),
	CategoryGrowth: compileAll(
		`(?i)(expand|growth|growing|scale).{0,30}(team|business|company|market)`,
		`(?i)(new|open).{0,20}(office|location|market|region)`,
		`(?i)(hire|hiring|recruit).{0,20}(spree|aggressively|rapidly)`,
		`(?i)(revenue|sales).{0,20}(growth|increase|up|higher)`,
	),
	CategoryTechnology: compileAll(
		`(?i)(implement|adopt|rollout).{0,30}(technology|platform|system|software)`,
		`(?i)(digital|tech|IT).{0,20}(transformation|modernization|upgrade)`,
		`(?i)(automat|streamline|optimize).{0,20}(process|operation|workflow)`,
		`(?i)(legacy|manual|outdated).{0,20}(system|process|tool)`,
	),
	CategoryFinancial: compileAll(
		`(?i)(raise|secure|close).{0,20}(funding|investment|round)`,
		`(?i)(revenue|profit).{0,20}(growth|increase|up)`,
		`(?i)(invest|spending).{0,20}(infrastructure|technology|expansion)`,
		`(?i)(budget|allocate).{0,20}(technology|improvement|modernization)`,
	),
	CategoryRisk: compileAll(
		`(?i)(compliance|regulatory|security).{0,30}(requirement|challenge|issue)`,
		`(?i)(risk|vulnerab|threat).{0,20}(assessment|management|mitigation)`,
		`(?i)(audit|review).{0,20}(process|system|operation)`,
		`(?i)(manual|error|inefficien).{0,20}(process|operation|workflow)`,
	),
	CategoryOperational: compileAll(
		`(?i)(improve|enhance|optimize).{0,30}(efficiency|productivity|performance)`,
		`(?i)(challenge|problem|issue).{0,20}(process|operation|workflow)`,
		`(?i)(bottleneck|pain.?point|friction).{0,20}(process|operation)`,
		`(?i)(manual|repetitive|time.consuming).{0,20}(task|process|work)`,
	),
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Detect はテキストからシグナルを抽出します。各マッチには前後のコンテキストが
// 付与され、同一コンテキストの重複は除去されます。信頼度はカテゴリ内の
// 出現回数から決まります（3件以上でhigh、2件でmedium、1件でlow）。
func Detect(text string) []entity.DetectedSignal {
	if text == "" {
		return nil
	}

	// カテゴリごとにコンテキストを収集
	byCategory := map[string][]string{}
	for category, regexps := range patterns {
		seen := map[string]struct{}{}
		for _, re := range regexps {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				ctx := contextAround(text, loc[0], loc[1])
				if ctx == "" {
					continue
				}
				if _, ok := seen[ctx]; ok {
					continue
				}
				seen[ctx] = struct{}{}
				byCategory[category] = append(byCategory[category], ctx)
			}
		}
	}

	var out []entity.DetectedSignal
	for _, category := range Categories() {
		contexts := byCategory[category]
		conf := confidenceFor(len(contexts))
		for _, ctx := range contexts {
			out = append(out, entity.DetectedSignal{
				Category:   category,
				Context:    ctx,
				Confidence: conf,
			})
		}
	}
	return out
}

// Categories は検出カテゴリを安定した順序で返します。
func Categories() []string {
	return []string{
		CategoryLeadership,
		CategoryGrowth,
		CategoryTechnology,
		CategoryFinancial,
		CategoryRisk,
		CategoryOperational,
	}
}

// confidenceFor はカテゴリ内の出現回数から信頼度を返します。
func confidenceFor(count int) string {
	switch {
	case count >= 3:
		return "high"
	case count == 2:
		return "medium"
	default:
		return "low"
	}
}

// contextAround はマッチ位置の前後contextWindowバイトを切り出します。
// 切り出し位置がマルチバイト文字の途中にかからないよう、rune境界まで広げます。
func contextAround(text string, start, end int) string {
	s := start - contextWindow
	if s < 0 {
		s = 0
	}
	for s > 0 && !utf8.RuneStart(text[s]) {
		s--
	}
	e := end + contextWindow
	if e > len(text) {
		e = len(text)
	}
	for e < len(text) && !utf8.RuneStart(text[e]) {
		e++
	}
	return strings.TrimSpace(text[s:e])
}
