// Package usecase は3つのエージェントを直列に実行するパイプラインを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	leadsentity "leadfinder/internal/feature/leads/domain/entity"
	researchentity "leadfinder/internal/feature/research/domain/entity"
	researchusecase "leadfinder/internal/feature/research/usecase"
)

// Input はパイプライン実行の入力です。
type Input struct {
	Product      analysisentity.Product
	Location     string
	CompanyTypes string
	MaxCompanies int
}

// Result はパイプライン実行の結果です。
type Result struct {
	RunID    string
	Analysis *analysisentity.MarketAnalysis
	Leads    []leadsentity.QualifiedLead
}

// ProductAnalyzer はProduct Analyzerエージェントのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ProductAnalyzer interface {
	AnalyzeProduct(ctx context.Context, product analysisentity.Product) (*analysisentity.MarketAnalysis, error)
}

// CompanyFinder はCompany Researcherエージェントのインターフェースです。
type CompanyFinder interface {
	FindCompanies(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error)
}

// LeadQualifier はLead Qualifierエージェントのインターフェースです。
type LeadQualifier interface {
	QualifyLeads(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error)
}

// pipelineUsecase は分析→調査→評価を単一スレッドで順次実行します。
// いずれかの段階の失敗は実行全体を中断し、そのままエラーとして返します。
// リトライや部分的な結果の回復は行いません。
type pipelineUsecase struct {
	analyzer  ProductAnalyzer
	finder    CompanyFinder
	qualifier LeadQualifier
}

// NewPipelineUsecase はpipelineUsecaseの新しいインスタンスを生成します。
func NewPipelineUsecase(a ProductAnalyzer, f CompanyFinder, q LeadQualifier) *pipelineUsecase {
	return &pipelineUsecase{analyzer: a, finder: f, qualifier: q}
}

// Run はパイプライン全体を実行します。候補企業が1社も見つからなかった場合は
// リードが空の結果を返します（エラーにはしません）。
func (u *pipelineUsecase) Run(ctx context.Context, in Input) (*Result, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID, "product", in.Product.Name)

	log.Info("パイプライン開始")
	analysis, err := u.analyzer.AnalyzeProduct(ctx, in.Product)
	if err != nil {
		return nil, fmt.Errorf("analyze stage: %w", err)
	}
	log.Info("市場分析完了", "target_market_items", len(analysis.TargetMarket))

	companies, err := u.finder.FindCompanies(ctx, researchusecase.Query{
		ProductName:    in.Product.Name,
		CompanyName:    in.Product.CompanyName,
		MarketAnalysis: analysis.Raw,
		Location:       in.Location,
		CompanyTypes:   in.CompanyTypes,
		MaxCompanies:   in.MaxCompanies,
	})
	if err != nil {
		return nil, fmt.Errorf("research stage: %w", err)
	}
	log.Info("企業調査完了", "companies", len(companies))

	if len(companies) == 0 {
		return &Result{RunID: runID, Analysis: analysis}, nil
	}

	leads, err := u.qualifier.QualifyLeads(ctx, in.Product, companies)
	if err != nil {
		return nil, fmt.Errorf("qualify stage: %w", err)
	}
	log.Info("リード評価完了", "leads", len(leads))

	return &Result{RunID: runID, Analysis: analysis, Leads: leads}, nil
}
