// Package handler はpipelineフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadfinder/internal/api"
	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	analysisusecase "leadfinder/internal/feature/analysis/usecase"
	leadshandler "leadfinder/internal/feature/leads/transport/handler"
	"leadfinder/internal/feature/pipeline/usecase"
)

// PipelineUsecase はフルパイプライン実行のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PipelineUsecase interface {
	Run(ctx context.Context, in usecase.Input) (*usecase.Result, error)
}

// PipelineHandler は分析→調査→評価のフルパイプライン実行を処理します。
type PipelineHandler struct {
	uc PipelineUsecase
}

// NewPipelineHandler はPipelineHandlerの新しいインスタンスを生成します。
func NewPipelineHandler(uc PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// Run はパイプライン全体を同期実行してリード一覧を返します。
//
// エンドポイント: POST /v1/leads
// Content-Type: application/json
func (h *PipelineHandler) Run(c *gin.Context) {
	var req api.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("パイプラインリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product_name, company_name, product_description are required"})
		return
	}

	result, err := h.uc.Run(c.Request.Context(), usecase.Input{
		Product: analysisentity.Product{
			Name:        req.ProductName,
			CompanyName: req.CompanyName,
			Description: req.ProductDescription,
		},
		Location:     req.Location,
		CompanyTypes: req.CompanyTypes,
		MaxCompanies: req.MaxCompanies,
	})
	if err != nil {
		if errors.Is(err, analysisusecase.ErrDescriptionTooLong) {
			slog.Warn("プロダクト説明が長すぎます", "product", req.ProductName)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product description is too long"})
			return
		}
		slog.Error("パイプライン実行に失敗", "error", err, "product", req.ProductName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "lead generation pipeline failed"})
		return
	}

	c.JSON(http.StatusOK, api.PipelineResponse{
		RunID: result.RunID,
		Analysis: api.AnalyzeResponse{
			Analysis:      result.Analysis.Raw,
			TargetMarket:  result.Analysis.TargetMarket,
			BuyingSignals: result.Analysis.BuyingSignals,
		},
		Leads: leadshandler.ToLeadPayloads(result.Leads),
	})
}
