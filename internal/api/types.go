// Package api はHTTP APIのリクエスト・レスポンスDTOを定義します。
package api

// ErrorResponse はエラーレスポンスの共通フォーマットです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalyzeRequest は POST /v1/analyze のリクエストボディです。
type AnalyzeRequest struct {
	ProductName        string `json:"product_name" binding:"required"`
	CompanyName        string `json:"company_name" binding:"required"`
	ProductDescription string `json:"product_description" binding:"required"`
}

// AnalyzeResponse は市場分析の結果です。
type AnalyzeResponse struct {
	Analysis      string   `json:"analysis"`
	TargetMarket  []string `json:"target_market"`
	BuyingSignals []string `json:"buying_signals"`
}

// ResearchRequest は POST /v1/research のリクエストボディです。
// MarketAnalysisはUI上でユーザーが編集した分析テキストをそのまま受け取ります。
type ResearchRequest struct {
	ProductName        string `json:"product_name" binding:"required"`
	CompanyName        string `json:"company_name" binding:"required"`
	ProductDescription string `json:"product_description"`
	MarketAnalysis     string `json:"market_analysis" binding:"required"`
	Location           string `json:"location"`
	CompanyTypes       string `json:"company_types"`
	MaxCompanies       int    `json:"max_companies"`
	CompanyWebsite     string `json:"company_website"`
}

// DetectedSignalPayload は構造化シグナルのDTOです。
type DetectedSignalPayload struct {
	Category   string `json:"category"`
	Context    string `json:"context"`
	Confidence string `json:"confidence"`
}

// CompanyPayload は候補企業のDTOです。researchのレスポンスと
// qualifyのリクエストの双方で使用します。
type CompanyPayload struct {
	CompanyName      string                  `json:"company_name"`
	MatchReasons     []string                `json:"match_reasons"`
	RecentSignals    []string                `json:"recent_signals"`
	DetectedSignals  []DetectedSignalPayload `json:"detected_signals,omitempty"`
	ValueProposition string                  `json:"value_proposition"`
}

// ResearchResponse は POST /v1/research のレスポンスです。
type ResearchResponse struct {
	Companies []CompanyPayload `json:"companies"`
}

// QualifyRequest は POST /v1/qualify のリクエストボディです。
type QualifyRequest struct {
	ProductName string           `json:"product_name" binding:"required"`
	CompanyName string           `json:"company_name"`
	Companies   []CompanyPayload `json:"companies" binding:"required"`
}

// UrgencyPayload は緊急度評価のDTOです。
type UrgencyPayload struct {
	Level   string   `json:"level"`
	Reasons []string `json:"reasons"`
}

// EmailPayload は生成されたアウトリーチメールのDTOです。
type EmailPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// LeadPayload は確度付きリードのDTOです。
type LeadPayload struct {
	Company CompanyPayload `json:"company"`
	Score   float64        `json:"score"`
	Status  string         `json:"status"`
	Urgency UrgencyPayload `json:"urgency"`
	Email   EmailPayload   `json:"email"`
}

// QualifyResponse は POST /v1/qualify のレスポンスです。
type QualifyResponse struct {
	Leads []LeadPayload `json:"leads"`
}

// PipelineRequest は POST /v1/leads（フルパイプライン実行）のリクエストボディです。
type PipelineRequest struct {
	ProductName        string `json:"product_name" binding:"required"`
	CompanyName        string `json:"company_name" binding:"required"`
	ProductDescription string `json:"product_description" binding:"required"`
	Location           string `json:"location"`
	CompanyTypes       string `json:"company_types"`
	MaxCompanies       int    `json:"max_companies"`
}

// PipelineResponse はフルパイプライン実行の結果です。
type PipelineResponse struct {
	RunID    string          `json:"run_id"`
	Analysis AnalyzeResponse `json:"analysis"`
	Leads    []LeadPayload   `json:"leads"`
}

// SendEmailRequest は POST /v1/leads/send のリクエストボディです。
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
