// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the part of the SES client the notifier uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewSESClient loads the default AWS credential chain for region.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

// SubmissionNotice describes an accepted intake submission.
type SubmissionNotice struct {
	RequestID    string
	BusinessName string
	ContactName  string
	ContactEmail string
}

// SubmissionNotifier emails the operator address after a successful submit.
type SubmissionNotifier struct {
	client    SESService
	fromEmail string
	toEmail   string
}

func NewSubmissionNotifier(client SESService, fromEmail, toEmail string) *SubmissionNotifier {
	return &SubmissionNotifier{client: client, fromEmail: fromEmail, toEmail: toEmail}
}

// Notify sends one plain-text email.
func (n *SubmissionNotifier) Notify(ctx context.Context, notice SubmissionNotice) (string, error) {
	subject := fmt.Sprintf("New intake submission: %s", fallback(notice.BusinessName, "unnamed business"))
	body := renderNotice(notice)

	out, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.fromEmail),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func renderNotice(notice SubmissionNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n", fallback(notice.BusinessName, "-"))
	fmt.Fprintf(&b, "Contact: %s <%s>\n", fallback(notice.ContactName, "-"), fallback(notice.ContactEmail, "-"))
	fmt.Fprintf(&b, "Request ID: %s\n", notice.RequestID)
	return b.String()
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
