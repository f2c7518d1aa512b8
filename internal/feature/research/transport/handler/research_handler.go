// Package handler はresearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadfinder/internal/api"
	"leadfinder/internal/feature/research/domain/entity"
	"leadfinder/internal/feature/research/usecase"
)

// ResearchHandler は候補企業調査のHTTPリクエストを処理します。
type ResearchHandler struct {
	finder usecase.Finder
}

// NewResearchHandler はResearchHandlerの新しいインスタンスを生成します。
func NewResearchHandler(finder usecase.Finder) *ResearchHandler {
	return &ResearchHandler{finder: finder}
}

// Research は市場分析に基づいて候補企業を調査します。
//
// エンドポイント: POST /v1/research
// Content-Type: application/json
func (h *ResearchHandler) Research(c *gin.Context) {
	var req api.ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("企業調査リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product_name, company_name, market_analysis are required"})
		return
	}

	companies, err := h.finder.FindCompanies(c.Request.Context(), usecase.Query{
		ProductName:    req.ProductName,
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
		MarketAnalysis: req.MarketAnalysis,
		Location:       req.Location,
		CompanyTypes:   req.CompanyTypes,
		MaxCompanies:   req.MaxCompanies,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrMissingAnalysis) || errors.Is(err, usecase.ErrMissingProduct) {
			slog.Warn("企業調査の入力が不足", "error", err)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("企業調査に失敗", "error", err, "product", req.ProductName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "company research failed"})
		return
	}

	c.JSON(http.StatusOK, api.ResearchResponse{Companies: ToCompanyPayloads(companies)})
}

// ToCompanyPayloads は候補企業エンティティをDTOに変換します。
func ToCompanyPayloads(companies []entity.CandidateCompany) []api.CompanyPayload {
	out := make([]api.CompanyPayload, 0, len(companies))
	for _, company := range companies {
		signals := make([]api.DetectedSignalPayload, 0, len(company.DetectedSignals))
		for _, s := range company.DetectedSignals {
			signals = append(signals, api.DetectedSignalPayload{
				Category:   s.Category,
				Context:    s.Context,
				Confidence: s.Confidence,
			})
		}
		out = append(out, api.CompanyPayload{
			CompanyName:      company.Name,
			MatchReasons:     company.MatchReasons,
			RecentSignals:    company.RecentSignals,
			DetectedSignals:  signals,
			ValueProposition: company.ValueProposition,
		})
	}
	return out
}
