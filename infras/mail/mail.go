package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	mailGo "github.com/wneessen/go-mail"
)

const (
	otelScopeName  = "mail"
	defaultTimeout = 10 * time.Second
)

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Mail interface {
	Enabled() bool
	Send(ctx context.Context, message Message) error
}

type mailImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mail {
	return &mailImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (m *mailImpl) Enabled() bool {
	return m.cfg.External.Mail.Enable && m.cfg.External.Mail.Host != constant.Empty
}

// Send delivers one message over a fresh SMTP session. Each network step is bounded by the
// configured timeout, shortened to ctx's deadline when that is sooner.
func (m *mailImpl) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, otelScopeName, otelScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msg, err := m.compose(message)
	if err != nil {
		log.Error().Err(err).Str("to", message.To).Msg("failed to compose mail")

		return fmt.Errorf("failed to compose mail: %w", err)
	}

	client, err := m.client(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create mail client")

		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", message.To).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func (m *mailImpl) compose(message Message) (*mailGo.Msg, error) {
	msg := mailGo.NewMsg()

	if err := msg.From(m.cfg.External.Mail.From); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}

	if err := msg.AddToFormat(message.ToName, message.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetDate()
	msg.SetBodyString(mailGo.TypeTextPlain, message.Body)

	return msg, nil
}

func (m *mailImpl) client(ctx context.Context) (*mailGo.Client, error) {
	mailCfg := m.cfg.External.Mail

	port, err := strconv.Atoi(mailCfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid mail port %q: %w", mailCfg.Port, err)
	}

	timeout := time.Duration(mailCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	opts := []mailGo.Option{
		mailGo.WithPort(port),
		mailGo.WithTimeout(timeout),
		mailGo.WithTLSPolicy(mailGo.TLSOpportunistic),
		mailGo.WithDialContextFunc(dialWithDeadline),
	}

	if mailCfg.Username != constant.Empty {
		opts = append(opts,
			mailGo.WithSMTPAuth(mailGo.SMTPAuthPlain),
			mailGo.WithUsername(mailCfg.Username),
			mailGo.WithPassword(mailCfg.Password),
		)
	}

	return mailGo.NewClient(mailCfg.Host, opts...) //nolint:wrapcheck
}

// dialWithDeadline carries the dial context's deadline onto the connection, so a server that
// accepts and then stalls cannot hold the session past it.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err = conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()

			return nil, fmt.Errorf("failed to set mail deadline: %w", err)
		}
	}

	return conn, nil
}
