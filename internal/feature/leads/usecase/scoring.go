package usecase

import (
	"leadfinder/internal/feature/leads/domain/entity"
	researchentity "leadfinder/internal/feature/research/domain/entity"
	"leadfinder/internal/feature/research/signal"
)

// リードスコアはシグナルのカテゴリと信頼度の重み付き合計に、適合理由・
// シグナル件数のベースラインを加えて0〜100に丸めた決定的な値です。
// 重みはカテゴリごとに high / medium / low の3段階です。
var scoreWeights = map[string][3]float64{
	signal.CategoryOperational: {30, 20, 10}, // ペインポイントに最も近いカテゴリ
	signal.CategoryGrowth:      {25, 15, 5},
	signal.CategoryTechnology:  {20, 15, 10},
	signal.CategoryRisk:        {20, 10, 5},
	signal.CategoryFinancial:   {15, 10, 5},
	signal.CategoryLeadership:  {10, 8, 5},
}

const (
	// baselinePerItem は適合理由・シグナル1件あたりのベースライン加点です。
	baselinePerItem = 4.0
	// baselineCap は各ベースライン項目の上限です。
	baselineCap = 20.0
	// maxScore はスコアの上限です。
	maxScore = 100.0
)

// calculateScore は候補企業のリードスコアを算出します。
func calculateScore(c researchentity.CandidateCompany) float64 {
	score := 0.0
	for _, s := range c.DetectedSignals {
		w, ok := scoreWeights[s.Category]
		if !ok {
			continue
		}
		switch s.Confidence {
		case "high":
			score += w[0]
		case "medium":
			score += w[1]
		default:
			score += w[2]
		}
	}

	// スクレイピング情報がない企業でも、適合理由とモデル由来のシグナルの
	// 件数からベースラインスコアが付きます。
	score += capAt(baselinePerItem*float64(len(c.MatchReasons)), baselineCap)
	score += capAt(baselinePerItem*float64(len(c.RecentSignals)), baselineCap)

	if score > maxScore {
		score = maxScore
	}
	return score
}

// evaluateUrgency はシグナルの信頼度分布から緊急度を評価します。
// 高信頼度の運用系シグナルが2件以上でHigh、1件または中信頼度の
// 運用・成長系シグナルが2件以上でMedium、それ以外はLowです。
func evaluateUrgency(c researchentity.CandidateCompany) entity.Urgency {
	var urgent, moderate, low []string
	for _, s := range c.DetectedSignals {
		switch {
		case s.Category == signal.CategoryOperational && s.Confidence == "high":
			urgent = append(urgent, s.Context)
		case (s.Category == signal.CategoryOperational || s.Category == signal.CategoryGrowth) && s.Confidence == "medium":
			moderate = append(moderate, s.Context)
		default:
			low = append(low, s.Context)
		}
	}

	switch {
	case len(urgent) >= 2:
		return entity.Urgency{Level: "High", Reasons: topN(urgent, 3)}
	case len(urgent) == 1 || len(moderate) >= 2:
		return entity.Urgency{Level: "Medium", Reasons: topN(append(urgent, moderate...), 3)}
	default:
		return entity.Urgency{Level: "Low", Reasons: topN(append(moderate, low...), 3)}
	}
}

// statusFor はスコアと緊急度からリードの確度を決定します。
func statusFor(score float64, urgency entity.Urgency) entity.Status {
	switch {
	case score >= 80 && urgency.Level == "High":
		return entity.StatusHot
	case score >= 60 || urgency.Level == "High":
		return entity.StatusWarm
	default:
		return entity.StatusCold
	}
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
