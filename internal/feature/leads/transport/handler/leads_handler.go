// Package handler はleadsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadfinder/internal/api"
	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	"leadfinder/internal/feature/leads/domain/entity"
	"leadfinder/internal/feature/leads/usecase"
	researchentity "leadfinder/internal/feature/research/domain/entity"
	researchhandler "leadfinder/internal/feature/research/transport/handler"
)

// LeadsUsecase はリード評価・配信のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type LeadsUsecase interface {
	QualifyLeads(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error)
	Deliver(ctx context.Context, to string, email entity.OutreachEmail) error
}

// LeadsHandler はリード評価・メール配信のHTTPリクエストを処理します。
type LeadsHandler struct {
	uc LeadsUsecase
}

// NewLeadsHandler はLeadsHandlerの新しいインスタンスを生成します。
func NewLeadsHandler(uc LeadsUsecase) *LeadsHandler {
	return &LeadsHandler{uc: uc}
}

// Qualify は候補企業リストをスコアリングしてリードとして評価します。
//
// エンドポイント: POST /v1/qualify
// Content-Type: application/json
func (h *LeadsHandler) Qualify(c *gin.Context) {
	var req api.QualifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("リード評価リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product_name and companies are required"})
		return
	}

	product := analysisentity.Product{
		Name:        req.ProductName,
		CompanyName: req.CompanyName,
	}

	leads, err := h.uc.QualifyLeads(c.Request.Context(), product, toCandidates(req.Companies))
	if err != nil {
		if errors.Is(err, usecase.ErrNoCompanies) {
			slog.Warn("評価対象の企業がありません")
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no candidate companies to qualify"})
			return
		}
		slog.Error("リード評価に失敗", "error", err, "product", req.ProductName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "lead qualification failed"})
		return
	}

	c.JSON(http.StatusOK, api.QualifyResponse{Leads: ToLeadPayloads(leads)})
}

// Send は生成済みのアウトリーチメールを指定宛先に送信します。
//
// エンドポイント: POST /v1/leads/send
// Content-Type: application/json
func (h *LeadsHandler) Send(c *gin.Context) {
	var req api.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("メール送信リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "to, subject, body are required"})
		return
	}

	err := h.uc.Deliver(c.Request.Context(), req.To, entity.OutreachEmail{
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrDeliveryNotConfigured) {
			slog.Warn("メール配信が未構成です")
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "email delivery is not configured"})
			return
		}
		slog.Error("メール送信に失敗", "error", err, "to", req.To)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "email delivery failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

// toCandidates はDTOの企業リストをエンティティに変換します。
func toCandidates(payloads []api.CompanyPayload) []researchentity.CandidateCompany {
	out := make([]researchentity.CandidateCompany, 0, len(payloads))
	for _, p := range payloads {
		signals := make([]researchentity.DetectedSignal, 0, len(p.DetectedSignals))
		for _, s := range p.DetectedSignals {
			signals = append(signals, researchentity.DetectedSignal{
				Category:   s.Category,
				Context:    s.Context,
				Confidence: s.Confidence,
			})
		}
		out = append(out, researchentity.CandidateCompany{
			Name:             p.CompanyName,
			MatchReasons:     p.MatchReasons,
			RecentSignals:    p.RecentSignals,
			DetectedSignals:  signals,
			ValueProposition: p.ValueProposition,
		})
	}
	return out
}

// ToLeadPayloads は評価済みリードをDTOに変換します。
func ToLeadPayloads(leads []entity.QualifiedLead) []api.LeadPayload {
	out := make([]api.LeadPayload, 0, len(leads))
	for _, lead := range leads {
		companies := researchhandler.ToCompanyPayloads([]researchentity.CandidateCompany{lead.Company})
		out = append(out, api.LeadPayload{
			Company: companies[0],
			Score:   lead.Score,
			Status:  string(lead.Status),
			Urgency: api.UrgencyPayload{
				Level:   lead.Urgency.Level,
				Reasons: lead.Urgency.Reasons,
			},
			Email: api.EmailPayload{
				Subject: lead.Email.Subject,
				Body:    lead.Email.Body,
			},
		})
	}
	return out
}
