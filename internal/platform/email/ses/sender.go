// Package ses はAmazon SESによるメール送信アダプタを提供します。
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsses "github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	leadsusecase "leadfinder/internal/feature/leads/usecase"
)

// Sender はSES経由でアウトリーチメールを送信します。
type Sender struct {
	client *awsses.Client
	sender string
}

// SenderがEmailSenderを実装していることをコンパイル時に検証します。
var _ leadsusecase.EmailSender = (*Sender)(nil)

// NewSender はAWSのデフォルト認証チェーンを使ってSESクライアントを初期化します。
func NewSender(ctx context.Context, cfg Config) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Sender{
		client: awsses.NewFromConfig(awsCfg),
		sender: cfg.Sender,
	}, nil
}

// Send は指定の宛先にメールを1通送信します。
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &awsses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.sender),
	})
	if err != nil {
		return fmt.Errorf("ses send to %s failed: %w", to, err)
	}
	return nil
}
