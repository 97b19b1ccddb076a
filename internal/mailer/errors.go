package mailer

import (
	"errors"
	"fmt"
	"net/textproto"

	"autokit/internal/services"
)

// Kind classifies a delivery failure.
type Kind int

const (
	// KindTransport covers connection, TLS and unexpected I/O failures.
	KindTransport Kind = iota
	// KindAuthentication means the relay rejected the sender credentials.
	KindAuthentication
	// KindProtocol covers any other SMTP-level rejection.
	KindProtocol
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrProtocol       = errors.New("smtp protocol error")
	ErrTransport      = errors.New("mail transport error")

	// ErrMissingCredentials is returned before any network activity when the
	// sender address or password is absent.
	ErrMissingCredentials = errors.New("missing mail credentials")
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindProtocol:
		return "protocol"
	default:
		return "transport"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrAuthentication
	case KindProtocol:
		return ErrProtocol
	default:
		return ErrTransport
	}
}

// SendError is returned by Mailer.Send for every failure past validation.
type SendError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SendError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SendError) Unwrap() error { return e.Err }

// Is matches the kind's sentinel and services.ErrExternal.
func (e *SendError) Is(target error) bool {
	return target == e.Kind.sentinel() || target == services.ErrExternal
}

// IsKind reports whether err carries a SendError of kind k.
func IsKind(err error, k Kind) bool {
	var sendErr *SendError
	return errors.As(err, &sendErr) && sendErr.Kind == k
}

func newSendError(kind Kind, op string, err error) *SendError {
	return &SendError{Kind: kind, Op: op, Err: err}
}

// asSendError keeps an existing SendError intact and otherwise wraps err
// with fallback.
func asSendError(fallback Kind, op string, err error) error {
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return err
	}
	return newSendError(fallback, op, err)
}

// classifyReply maps an SMTP reply error to a kind. 530, 534 and 535 are the
// authentication rejections defined by RFC 4954.
func classifyReply(err error) Kind {
	var reply *textproto.Error
	if !errors.As(err, &reply) {
		return KindTransport
	}
	switch reply.Code {
	case 530, 534, 535:
		return KindAuthentication
	default:
		return KindProtocol
	}
}

func credentialsError(missing string) error {
	return services.Wrap(services.ErrConfiguration, "email", "validate credentials",
		fmt.Sprintf("%s not set (EMAIL_ADDRESS / EMAIL_PASSWORD)", missing), ErrMissingCredentials)
}
