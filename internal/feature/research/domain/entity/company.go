package entity

// DetectedSignal は企業のテキストから正規表現で抽出された構造化シグナルです。
type DetectedSignal struct {
	Category   string // シグナルのカテゴリ（growth_signals など）
	Context    string // マッチ前後のコンテキスト
	Confidence string // high / medium / low
}

// CandidateCompany はCompany Researcherが生成した候補企業を表します。
type CandidateCompany struct {
	Name             string           // 企業名
	MatchReasons     []string         // 候補とみなした理由（箇条書き）
	RecentSignals    []string         // 最近の公開情報に基づくシグナル（箇条書き）
	DetectedSignals  []DetectedSignal // スクレイピング結果から抽出した構造化シグナル
	ValueProposition string           // 企業ごとのバリュープロポジション
}
