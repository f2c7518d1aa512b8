package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	"leadfinder/internal/feature/leads/domain/entity"
	"leadfinder/internal/feature/leads/transport/handler"
	"leadfinder/internal/feature/leads/usecase"
	researchentity "leadfinder/internal/feature/research/domain/entity"
)

// mockLeadsUsecase はLeadsUsecaseインターフェースのモック実装です。
type mockLeadsUsecase struct {
	QualifyLeadsFunc func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error)
	DeliverFunc      func(ctx context.Context, to string, email entity.OutreachEmail) error
}

func (m *mockLeadsUsecase) QualifyLeads(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error) {
	return m.QualifyLeadsFunc(ctx, product, companies)
}

func (m *mockLeadsUsecase) Deliver(ctx context.Context, to string, email entity.OutreachEmail) error {
	return m.DeliverFunc(ctx, to, email)
}

func TestLeadsHandler_Qualify(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"product_name":"CreditLens","company_name":"Moody's","companies":[{"company_name":"Acme Bank","match_reasons":["Regional lender"],"recent_signals":["Hiring risk analysts"],"value_proposition":"Faster decisions"}]}`

	tests := []struct {
		name           string
		requestBody    string
		mockFunc       func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: leads qualified",
			requestBody: validBody,
			mockFunc: func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error) {
				assert.Equal(t, "CreditLens", product.Name)
				assert.Len(t, companies, 1)
				assert.Equal(t, "Acme Bank", companies[0].Name)
				return []entity.QualifiedLead{
					{
						Company: companies[0],
						Score:   72,
						Status:  entity.StatusWarm,
						Urgency: entity.Urgency{Level: "Medium", Reasons: []string{"Hiring risk analysts"}},
						Email:   entity.OutreachEmail{Subject: "CreditLens for Acme Bank", Body: "Hello"},
					},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"leads":[{
				"company":{"company_name":"Acme Bank","match_reasons":["Regional lender"],"recent_signals":["Hiring risk analysts"],"value_proposition":"Faster decisions"},
				"score":72,
				"status":"Warm Lead",
				"urgency":{"level":"Medium","reasons":["Hiring risk analysts"]},
				"email":{"subject":"CreditLens for Acme Bank","body":"Hello"}
			}]}`,
		},
		{
			name:           "error: missing companies",
			requestBody:    `{"product_name":"CreditLens"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"product_name and companies are required"}`,
		},
		{
			name:        "error: empty company list",
			requestBody: `{"product_name":"CreditLens","companies":[]}`,
			mockFunc: func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error) {
				return nil, usecase.ErrNoCompanies
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"no candidate companies to qualify"}`,
		},
		{
			name:        "error: usecase returns error",
			requestBody: validBody,
			mockFunc: func(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error) {
				return nil, errors.New("gemini API error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"lead qualification failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockLeadsUsecase{QualifyLeadsFunc: tt.mockFunc}

			h := handler.NewLeadsHandler(mockUC)

			router := gin.New()
			router.POST("/v1/qualify", h.Qualify)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/v1/qualify", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestLeadsHandler_Send(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"to":"cto@acme.example.com","subject":"CreditLens","body":"Hello"}`

	tests := []struct {
		name           string
		requestBody    string
		mockFunc       func(ctx context.Context, to string, email entity.OutreachEmail) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: email sent",
			requestBody: validBody,
			mockFunc: func(ctx context.Context, to string, email entity.OutreachEmail) error {
				assert.Equal(t, "cto@acme.example.com", to)
				assert.Equal(t, "CreditLens", email.Subject)
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "error: invalid address",
			requestBody:    `{"to":"not-an-email","subject":"s","body":"b"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"to, subject, body are required"}`,
		},
		{
			name:        "error: delivery not configured",
			requestBody: validBody,
			mockFunc: func(ctx context.Context, to string, email entity.OutreachEmail) error {
				return usecase.ErrDeliveryNotConfigured
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"email delivery is not configured"}`,
		},
		{
			name:        "error: delivery fails",
			requestBody: validBody,
			mockFunc: func(ctx context.Context, to string, email entity.OutreachEmail) error {
				return errors.New("ses error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"email delivery failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockLeadsUsecase{DeliverFunc: tt.mockFunc}

			h := handler.NewLeadsHandler(mockUC)

			router := gin.New()
			router.POST("/v1/leads/send", h.Send)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/v1/leads/send", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
