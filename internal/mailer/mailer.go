package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"autokit/internal/logging"
	"autokit/internal/services"
)

// Mailer sends messages from one sender through a Transport.
type Mailer struct {
	transport Transport
	creds     Credentials
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option customizes a Mailer.
type Option func(*Mailer)

// WithClock overrides the Date header source.
func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides the Message-ID source.
func WithIDGenerator(newID func() string) Option {
	return func(m *Mailer) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// New constructs a mailer. Credentials are checked on each Send.
func New(transport Transport, creds Credentials, logger *slog.Logger, opts ...Option) *Mailer {
	m := &Mailer{
		transport: transport,
		creds: Credentials{
			Address:  strings.TrimSpace(creds.Address),
			Password: creds.Password,
		},
		logger: logging.NewComponentLogger(logger, "mailer"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send delivers msg. Credentials and the recipient are validated before any
// network activity. The session is closed on every path once opened. Delivery
// failures are returned as *SendError.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	logger := logging.WithContext(ctx, m.logger)

	if err := m.creds.Validate(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "email", "validate message", "", err)
	}
	from, err := envelopeAddress(m.creds.Address)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "email", "validate sender",
			fmt.Sprintf("sender %s is not a valid address", m.creds.Address), err)
	}
	to, _ := envelopeAddress(msg.To)

	raw, err := Compose(Envelope{
		From:      m.creds.Address,
		Date:      m.now(),
		MessageID: messageID(m.newID(), from),
	}, msg)
	if err != nil {
		return services.Wrap(services.ErrValidation, "email", "compose message", "", err)
	}

	logger.Info("sending email",
		logging.String("recipient", to),
		logging.String("subject", msg.Subject),
		logging.Int("bytes", len(raw)),
	)

	session, err := m.transport.Open(ctx)
	if err != nil {
		return m.fail(logger, asSendError(KindTransport, "connect", err))
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Debug("closing smtp session failed", logging.Error(cerr))
		}
	}()

	if err := session.Auth(Credentials{Address: from, Password: m.creds.Password}); err != nil {
		return m.fail(logger, asSendError(KindAuthentication, "auth", err))
	}
	if err := session.Send(from, []string{to}, raw); err != nil {
		return m.fail(logger, asSendError(KindTransport, "send", err))
	}

	logger.Info("email sent", logging.String("recipient", to))
	return nil
}

func (m *Mailer) fail(logger *slog.Logger, err error) error {
	kind := KindTransport
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		kind = sendErr.Kind
	}
	logger.Error("email delivery failed",
		logging.String("kind", kind.String()),
		logging.Error(err),
	)
	return err
}
