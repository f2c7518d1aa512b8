package entity

import researchentity "leadfinder/internal/feature/research/domain/entity"

// Status はリードの確度を表します。
type Status string

const (
	StatusHot  Status = "Hot Lead"
	StatusWarm Status = "Warm Lead"
	StatusCold Status = "Cold Lead"
)

// Urgency はリードの緊急度評価を表します。
type Urgency struct {
	Level   string   // High / Medium / Low
	Reasons []string // 評価の根拠となった上位シグナル（最大3件）
}

// OutreachEmail は生成されたアウトリーチメールです。
type OutreachEmail struct {
	Subject string // 件名
	Body    string // 本文
}

// QualifiedLead は候補企業にスコアとメールを付与した最終的なリードです。
type QualifiedLead struct {
	Company researchentity.CandidateCompany // 元になった候補企業
	Score   float64                         // 0〜100のリードスコア
	Status  Status                          // Hot / Warm / Cold
	Urgency Urgency                         // 緊急度評価
	Email   OutreachEmail                   // 生成されたアウトリーチメール
}
