// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadfinder/internal/api"
	"leadfinder/internal/feature/analysis/domain/entity"
	"leadfinder/internal/feature/analysis/usecase"
)

// AnalysisUsecase はプロダクト市場分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	AnalyzeProduct(ctx context.Context, product entity.Product) (*entity.MarketAnalysis, error)
}

// AnalysisHandler はプロダクト市場分析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Analyze はプロダクト情報から市場分析を生成します。
//
// エンドポイント: POST /v1/analyze
// Content-Type: application/json
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("分析リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product_name, company_name, product_description are required"})
		return
	}

	analysis, err := h.uc.AnalyzeProduct(c.Request.Context(), entity.Product{
		Name:        req.ProductName,
		CompanyName: req.CompanyName,
		Description: req.ProductDescription,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDescriptionTooLong) {
			slog.Warn("プロダクト説明が長すぎます", "product", req.ProductName)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product description is too long"})
			return
		}
		if errors.Is(err, usecase.ErrUnparsableAnalysis) {
			slog.Error("分析結果の解析に失敗", "error", err, "product", req.ProductName)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "analysis response could not be parsed"})
			return
		}
		slog.Error("市場分析に失敗", "error", err, "product", req.ProductName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market analysis failed"})
		return
	}

	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Analysis:      analysis.Raw,
		TargetMarket:  analysis.TargetMarket,
		BuyingSignals: analysis.BuyingSignals,
	})
}
