package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"docverify/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendRunSummary(ctx context.Context, toEmail string, summary port.RunSummary) error {
	subject := fmt.Sprintf("Análise concluída: %s", summary.PersonName)
	htmlBody := buildRunSummaryHTML(summary)
	textBody := fmt.Sprintf(
		"A análise de %s foi concluída.\n\nStatus geral: %s\nDocumentos processados: %d\nAprovados: %d\nPendências: %d\n",
		summary.PersonName, summary.OverallStatus,
		summary.Processed, summary.Passed, summary.Pendencies)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRunSummaryHTML(summary port.RunSummary) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; color: #222;">
  <h2>Análise concluída: %s</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Status geral</strong></td><td>%s</td></tr>
    <tr><td><strong>Documentos processados</strong></td><td>%d</td></tr>
    <tr><td><strong>Aprovados</strong></td><td>%d</td></tr>
    <tr><td><strong>Pendências</strong></td><td>%d</td></tr>
  </table>
</body>
</html>`,
		summary.PersonName, summary.OverallStatus,
		summary.Processed, summary.Passed, summary.Pendencies)
}
