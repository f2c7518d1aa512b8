package entity

// Product はユーザーが入力した分析対象のプロダクト情報を表します。
// 1回の実行の間は不変です。
type Product struct {
	Name        string // プロダクト名
	CompanyName string // 提供元の企業名
	Description string // プロダクトの自由記述
}

// MarketAnalysis はプロダクトから導出された市場分析を表します。
type MarketAnalysis struct {
	Raw           string   // モデルが生成した分析テキスト全体（UI上で編集可能）
	TargetMarket  []string // ターゲット市場の特徴（箇条書き）
	BuyingSignals []string // 主要な購買シグナル（箇条書き）
}
