package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================================
// Mock Implementations
// ==========================================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSubmissionNotifier_Notify(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
		},
	}
	n := NewSubmissionNotifier(mockSES, "intake@example.com", "ops@example.com")

	id, err := n.Notify(context.Background(), SubmissionNotice{
		RequestID:    "req-42",
		BusinessName: "Acme Bakery",
		ContactName:  "Sam Lee",
		ContactEmail: "sam@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	require.Len(t, mockSES.calls, 1)
	in := mockSES.calls[0]
	assert.Equal(t, []string{"ops@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "intake@example.com", aws.ToString(in.Source))
	assert.Equal(t, "New intake submission: Acme Bakery", aws.ToString(in.Message.Subject.Data))
	body := aws.ToString(in.Message.Body.Text.Data)
	assert.Contains(t, body, "Sam Lee <sam@example.com>")
	assert.Contains(t, body, "req-42")
}

func TestSubmissionNotifier_BlankNamesAndFailure(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	n := NewSubmissionNotifier(mockSES, "from@example.com", "to@example.com")

	_, err := n.Notify(context.Background(), SubmissionNotice{})
	assert.EqualError(t, err, "throttled")
	assert.Equal(t, "New intake submission: unnamed business", aws.ToString(mockSES.calls[0].Message.Subject.Data))
}
