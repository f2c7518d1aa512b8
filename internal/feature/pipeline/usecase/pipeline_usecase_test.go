package usecase_test

import (
	"context"
	"errors"
	"testing"

	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	leadsentity "leadfinder/internal/feature/leads/domain/entity"
	"leadfinder/internal/feature/pipeline/usecase"
	researchentity "leadfinder/internal/feature/research/domain/entity"
	researchusecase "leadfinder/internal/feature/research/usecase"
)

// ErrStage はモックと期待値の間で共有されるセンチネルエラーです。
var ErrStage = errors.New("stage error")

// mockAnalyzer はProductAnalyzerインターフェースのモック実装です。
type mockAnalyzer struct {
	AnalyzeFunc  func(ctx context.Context, product analysisentity.Product) (*analysisentity.MarketAnalysis, error)
	AnalyzeCalls int
}

func (m *mockAnalyzer) AnalyzeProduct(ctx context.Context, product analysisentity.Product) (*analysisentity.MarketAnalysis, error) {
	m.AnalyzeCalls++
	return m.AnalyzeFunc(ctx, product)
}

// mockFinder はCompanyFinderインターフェースのモック実装です。
type mockFinder struct {
	FindFunc  func(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error)
	FindCalls int
	LastQuery researchusecase.Query
}

func (m *mockFinder) FindCompanies(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error) {
	m.FindCalls++
	m.LastQuery = q
	return m.FindFunc(ctx, q)
}

// mockQualifier はLeadQualifierインターフェースのモック実装です。
type mockQualifier struct {
	QualifyFunc  func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error)
	QualifyCalls int
}

func (m *mockQualifier) QualifyLeads(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error) {
	m.QualifyCalls++
	return m.QualifyFunc(ctx, product, companies)
}

var analysis = &analysisentity.MarketAnalysis{
	Raw:           "1. Target Market Characteristics:\n- Banks\n2. Key Buying Signals:\n- Mergers",
	TargetMarket:  []string{"Banks"},
	BuyingSignals: []string{"Mergers"},
}

var input = usecase.Input{
	Product: analysisentity.Product{
		Name:        "CreditLens",
		CompanyName: "Moody's",
		Description: "Cloud platform for commercial credit assessment.",
	},
	Location:     "US Midwest",
	CompanyTypes: "regional banks",
}

func TestPipelineUsecase_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("success: stages run in order and the analysis feeds the researcher", func(t *testing.T) {
		company := researchentity.CandidateCompany{Name: "Acme Lending", MatchReasons: []string{"fit"}}
		lead := leadsentity.QualifiedLead{Company: company, Score: 42}

		a := &mockAnalyzer{AnalyzeFunc: func(ctx context.Context, p analysisentity.Product) (*analysisentity.MarketAnalysis, error) {
			return analysis, nil
		}}
		f := &mockFinder{FindFunc: func(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error) {
			return []researchentity.CandidateCompany{company}, nil
		}}
		q := &mockQualifier{QualifyFunc: func(ctx context.Context, p analysisentity.Product, cs []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error) {
			return []leadsentity.QualifiedLead{lead}, nil
		}}

		got, err := usecase.NewPipelineUsecase(a, f, q).Run(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RunID == "" {
			t.Error("expected a run ID")
		}
		if got.Analysis != analysis {
			t.Error("analysis not propagated")
		}
		if len(got.Leads) != 1 || got.Leads[0].Company.Name != "Acme Lending" {
			t.Errorf("unexpected leads: %+v", got.Leads)
		}
		if f.LastQuery.MarketAnalysis != analysis.Raw {
			t.Error("researcher did not receive the raw analysis text")
		}
		if f.LastQuery.Location != input.Location || f.LastQuery.CompanyTypes != input.CompanyTypes {
			t.Error("search preferences not propagated")
		}
		if a.AnalyzeCalls != 1 || f.FindCalls != 1 || q.QualifyCalls != 1 {
			t.Errorf("unexpected call counts: %d %d %d", a.AnalyzeCalls, f.FindCalls, q.QualifyCalls)
		}
	})

	t.Run("no companies: empty leads without qualification", func(t *testing.T) {
		a := &mockAnalyzer{AnalyzeFunc: func(ctx context.Context, p analysisentity.Product) (*analysisentity.MarketAnalysis, error) {
			return analysis, nil
		}}
		f := &mockFinder{FindFunc: func(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error) {
			return nil, nil
		}}
		q := &mockQualifier{QualifyFunc: func(ctx context.Context, p analysisentity.Product, cs []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error) {
			t.Fatal("qualifier must not be called for an empty company list")
			return nil, nil
		}}

		got, err := usecase.NewPipelineUsecase(a, f, q).Run(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Leads) != 0 {
			t.Errorf("expected no leads, got %d", len(got.Leads))
		}
	})

	t.Run("error: analyze failure aborts before research", func(t *testing.T) {
		a := &mockAnalyzer{AnalyzeFunc: func(ctx context.Context, p analysisentity.Product) (*analysisentity.MarketAnalysis, error) {
			return nil, ErrStage
		}}
		f := &mockFinder{FindFunc: func(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error) {
			t.Fatal("finder must not be called after analyze failure")
			return nil, nil
		}}
		q := &mockQualifier{}

		if _, err := usecase.NewPipelineUsecase(a, f, q).Run(ctx, input); !errors.Is(err, ErrStage) {
			t.Fatalf("expected wrapped ErrStage, got %v", err)
		}
	})

	t.Run("error: research failure aborts before qualification", func(t *testing.T) {
		a := &mockAnalyzer{AnalyzeFunc: func(ctx context.Context, p analysisentity.Product) (*analysisentity.MarketAnalysis, error) {
			return analysis, nil
		}}
		f := &mockFinder{FindFunc: func(ctx context.Context, q researchusecase.Query) ([]researchentity.CandidateCompany, error) {
			return nil, ErrStage
		}}
		q := &mockQualifier{QualifyFunc: func(ctx context.Context, p analysisentity.Product, cs []researchentity.CandidateCompany) ([]leadsentity.QualifiedLead, error) {
			t.Fatal("qualifier must not be called after research failure")
			return nil, nil
		}}

		if _, err := usecase.NewPipelineUsecase(a, f, q).Run(ctx, input); !errors.Is(err, ErrStage) {
			t.Fatalf("expected wrapped ErrStage, got %v", err)
		}
	})
}
