package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "sms"
	sendPath      = "/messages"
)

var ErrRejected = errors.New("sms gateway rejected the message")

type sendRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id,omitempty"`
}

type sendResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

type SMS interface {
	Enabled() bool
	Send(ctx context.Context, phone, message string) error
}

type smsImpl struct {
	client   *resty.Client
	enabled  bool
	senderID string
	otel     otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) SMS {
	smsCfg := cfg.External.SMS

	client := resty.New().
		SetBaseURL(smsCfg.Endpoint).
		SetTimeout(time.Duration(smsCfg.TimeoutSeconds) * time.Second).
		SetRetryCount(smsCfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetHeader("Accept", constant.ContentTypeJSON).
		SetAuthToken(smsCfg.APIKey)

	return &smsImpl{
		client:   client,
		enabled:  smsCfg.Enable && smsCfg.Endpoint != constant.Empty,
		senderID: smsCfg.SenderID,
		otel:     otel,
	}
}

func (s *smsImpl) Enabled() bool {
	return s.enabled
}

func (s *smsImpl) Send(ctx context.Context, phone, message string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var result sendResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{To: phone, Message: message, SenderID: s.senderID}).
		SetResult(&result).
		SetError(&result).
		Post(sendPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to call sms gateway")

		return fmt.Errorf("failed to call sms gateway: %w", err)
	}

	scope.SetAttribute("http.status_code", resp.StatusCode())

	if resp.IsError() {
		log.Error().Int("status_code", resp.StatusCode()).Str("error", result.Error).Msg("sms gateway returned error")

		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), result.Error)
	}

	log.Info().Str("message_id", result.MessageID).Msg("sms sent")

	return nil
}
