package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	analysisentity "leadfinder/internal/feature/analysis/domain/entity"
	"leadfinder/internal/feature/leads/domain/entity"
	researchentity "leadfinder/internal/feature/research/domain/entity"
)

const (
	emailSystemPrompt = "You are a B2B sales expert who writes concise, personalized outreach emails. Keep the tone professional and specific."

	emailPromptTemplate = `Write a short outreach email to %s about %s by %s.

Why they are a good fit:
%s

Recent signals:
%s

Requirements:
1. Reference %s by name and mention %s explicitly
2. Lead with their specific situation, not our product
3. Keep it under 150 words
4. First line must be "Subject: <subject line>" followed by the body`

	emailRetryNote = "\n\nThe previous draft did not mention the company by name. Rewrite it so that %s appears in the body."
)

// TextGenerator はプロンプトからテキストを生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// EmailSender は生成済みメールを配信するインターフェースです。
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// leadsUsecase はリードの確度評価とアウトリーチメール生成を提供します。
type leadsUsecase struct {
	generator TextGenerator
	sender    EmailSender // nilの場合は配信不可
}

// NewLeadsUsecase はleadsUsecaseの新しいインスタンスを生成します。
// senderはnilでもよく、その場合Deliverは ErrDeliveryNotConfigured を返します。
func NewLeadsUsecase(g TextGenerator, sender EmailSender) *leadsUsecase {
	return &leadsUsecase{generator: g, sender: sender}
}

// QualifyLeads は候補企業を決定的なスコアリングルールで評価し、企業ごとに
// アウトリーチメールを生成して、スコア降順（安定ソート）で返します。
// スコアリングルールの詳細はscoring.goを参照してください。
func (u *leadsUsecase) QualifyLeads(ctx context.Context, product analysisentity.Product, companies []researchentity.CandidateCompany) ([]entity.QualifiedLead, error) {
	if len(companies) == 0 {
		return nil, ErrNoCompanies
	}
	if product.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	leads := make([]entity.QualifiedLead, 0, len(companies))
	for _, c := range companies {
		score := calculateScore(c)
		urgency := evaluateUrgency(c)

		email, err := u.generateEmail(ctx, product, c)
		if err != nil {
			return nil, err
		}

		leads = append(leads, entity.QualifiedLead{
			Company: c,
			Score:   score,
			Status:  statusFor(score, urgency),
			Urgency: urgency,
			Email:   email,
		})
	}

	// 同点はリサーチ結果の順序を維持
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].Score > leads[j].Score })
	return leads, nil
}

// Deliver は生成済みメールを配信します。
func (u *leadsUsecase) Deliver(ctx context.Context, to string, email entity.OutreachEmail) error {
	if u.sender == nil {
		return ErrDeliveryNotConfigured
	}
	if err := u.sender.Send(ctx, to, email.Subject, email.Body); err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	return nil
}

// generateEmail は企業ごとのアウトリーチメールを生成します。
// 本文に企業名が含まれない場合は1回だけ再生成を試み、それでも含まれない
// 場合は得られた結果をそのまま返します。
func (u *leadsUsecase) generateEmail(ctx context.Context, product analysisentity.Product, c researchentity.CandidateCompany) (entity.OutreachEmail, error) {
	prompt := fmt.Sprintf(emailPromptTemplate,
		c.Name, product.Name, product.CompanyName,
		asBullets(c.MatchReasons), asBullets(c.RecentSignals),
		c.Name, product.Name)

	raw, err := u.generator.Generate(ctx, emailSystemPrompt, prompt)
	if err != nil {
		return entity.OutreachEmail{}, fmt.Errorf("email generation failed for %q: %w", c.Name, err)
	}

	if !strings.Contains(raw, c.Name) {
		retry := prompt + fmt.Sprintf(emailRetryNote, c.Name)
		if raw2, err2 := u.generator.Generate(ctx, emailSystemPrompt, retry); err2 == nil {
			raw = raw2
		}
	}

	return splitEmail(raw), nil
}

// splitEmail は最初の行のSubjectプレフィックスを件名として分離します。
func splitEmail(raw string) entity.OutreachEmail {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, "\n", 2)
	if len(parts) == 2 && strings.HasPrefix(strings.ToLower(parts[0]), "subject:") {
		return entity.OutreachEmail{
			Subject: strings.TrimSpace(parts[0][len("Subject:"):]),
			Body:    strings.TrimSpace(parts[1]),
		}
	}
	return entity.OutreachEmail{Body: raw}
}

// asBullets は文字列スライスを箇条書きテキストに変換します。
func asBullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return b.String()
}
