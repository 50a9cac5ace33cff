package submitfinancials

import (
	"context"
	"net/http"

	commonaws "bizplan-intake/internal/common/aws"
	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"
)

const (
	Route = "/intake/submit"
)

// Submitter sends a form to the financials backend.
type Submitter interface {
	Submit(ctx context.Context, form *intake.Form, requestID string) (*intake.SubmitResult, error)
}

// Notifier announces an accepted submission.
type Notifier interface {
	Notify(ctx context.Context, notice commonaws.SubmissionNotice) (string, error)
}

type Handler struct {
	config    *Config
	submitter Submitter
	notifier  Notifier
	errors    *commonerrors.Handler
	logger    logger.Logger
}

// NewHandler builds the handler; notifier may be nil.
func NewHandler(config *Config, submitter Submitter, notifier Notifier, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"route": Route})
	return &Handler{
		config:    config,
		submitter: submitter,
		notifier:  notifier,
		errors:    commonerrors.NewHandler(l),
		logger:    l,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := commonhttp.DecodeJSON(r, inputSchema, &input); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input, commonhttp.RequestIDFrom(r))
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input, requestID string) (*Output, error) {
	if requestID == "" {
		requestID = commonhttp.NewRequestID()
	}

	form := intake.NewFormFromValues(input.Values)
	result, err := h.submitter.Submit(ctx, form, requestID)
	if err != nil {
		if stdErr, ok := commonerrors.AsStandardError(err); ok {
			stdErr.WithMetadata("requestId", requestID)
			if result != nil && len(result.Unmapped) > 0 {
				stdErr.WithMetadata("unmappedErrors", result.Unmapped)
			}
		}
		return nil, err
	}

	output := &Output{
		Status:         StatusSubmitted,
		RequestID:      requestID,
		UpstreamStatus: result.StatusCode,
		Response:       result.Body,
	}
	output.NotificationID = h.notify(ctx, form, requestID)
	return output, nil
}

// notify emails the operator. Failures are logged only.
func (h *Handler) notify(ctx context.Context, form *intake.Form, requestID string) string {
	if h.notifier == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.NotifyTimeout)
	defer cancel()

	messageID, err := h.notifier.Notify(ctx, commonaws.SubmissionNotice{
		RequestID:    requestID,
		BusinessName: form.Value(models.FieldBusinessName),
		ContactName:  form.Value(models.FieldContactName),
		ContactEmail: form.Value(models.FieldContactEmail),
	})
	if err != nil {
		notifyErr := commonerrors.NewNotificationSendFailedError("email", err)
		h.logger.Warn("submission notification failed", map[string]interface{}{
			"requestId": requestID,
			"errorCode": string(notifyErr.Code),
			"error":     err,
		})
		return ""
	}

	h.logger.Info("submission notification sent", map[string]interface{}{
		"requestId": requestID,
		"messageId": messageID,
	})
	return messageID
}
