package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

const dialTimeout = 30 * time.Second

// Credentials authenticate the sender with the relay.
type Credentials struct {
	Address  string
	Password string
}

// Validate reports ErrMissingCredentials when either value is empty.
func (c Credentials) Validate() error {
	switch {
	case c.Address == "" && c.Password == "":
		return credentialsError("sender address and password")
	case c.Address == "":
		return credentialsError("sender address")
	case c.Password == "":
		return credentialsError("sender password")
	}
	return nil
}

// Transport opens sessions with a mail relay.
type Transport interface {
	Open(ctx context.Context) (Session, error)
}

// Session is one connected, encrypted relay conversation.
type Session interface {
	Auth(creds Credentials) error
	Send(from string, to []string, msg []byte) error
	Close() error
}

// SMTPTransport connects to an SMTP submission relay and requires STARTTLS.
type SMTPTransport struct {
	Host string
	Port int
	// TLSConfig overrides the default client TLS settings.
	TLSConfig *tls.Config
}

// NewSMTPTransport returns a transport for host:port.
func NewSMTPTransport(host string, port int) *SMTPTransport {
	return &SMTPTransport{Host: host, Port: port}
}

// Addr returns the relay's dial address.
func (t *SMTPTransport) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Open dials the relay, greets it and upgrades the connection with STARTTLS.
// Cancelling ctx aborts any in-flight I/O on the session.
func (t *SMTPTransport) Open(ctx context.Context) (Session, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Addr())
	if err != nil {
		return nil, newSendError(KindTransport, "connect", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		stop()
		_ = conn.Close()
		return nil, newSendError(classifyReply(err), "greeting", err)
	}
	if ok, _ := client.Extension("STARTTLS"); !ok {
		stop()
		_ = client.Close()
		return nil, newSendError(KindProtocol, "starttls", errors.New("relay does not offer STARTTLS"))
	}
	tlsConfig := t.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: t.Host, MinVersion: tls.VersionTLS12}
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		stop()
		_ = client.Close()
		return nil, newSendError(classifyReply(err), "starttls", err)
	}
	return &smtpSession{client: client, host: t.Host, stop: stop}, nil
}

type smtpSession struct {
	client *smtp.Client
	host   string
	stop   func() bool
}

func (s *smtpSession) Auth(creds Credentials) error {
	if err := s.client.Auth(smtp.PlainAuth("", creds.Address, creds.Password, s.host)); err != nil {
		kind := classifyReply(err)
		if kind == KindProtocol {
			// Any other reply to AUTH still means the credentials were not accepted.
			kind = KindAuthentication
		}
		return newSendError(kind, "auth", err)
	}
	return nil
}

func (s *smtpSession) Send(from string, to []string, msg []byte) error {
	if err := s.client.Mail(from); err != nil {
		return newSendError(classifyReply(err), "MAIL FROM", err)
	}
	for _, rcpt := range to {
		if err := s.client.Rcpt(rcpt); err != nil {
			return newSendError(classifyReply(err), "RCPT TO", fmt.Errorf("%s: %w", rcpt, err))
		}
	}
	w, err := s.client.Data()
	if err != nil {
		return newSendError(classifyReply(err), "DATA", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return newSendError(KindTransport, "DATA", err)
	}
	if err := w.Close(); err != nil {
		return newSendError(classifyReply(err), "DATA", err)
	}
	return nil
}

// Close sends QUIT; the connection is closed whether or not QUIT succeeds.
func (s *smtpSession) Close() error {
	s.stop()
	if err := s.client.Quit(); err != nil {
		_ = s.client.Close()
		return err
	}
	return nil
}
