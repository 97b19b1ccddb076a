// Package mailer composes HTML notification emails and delivers them over an
// authenticated, STARTTLS-protected SMTP session.
//
// Delivery goes through the Transport and Session interfaces so tests can
// substitute an in-memory relay. Every failure after credential validation is
// returned as a *SendError whose Kind distinguishes authentication, protocol
// and transport problems; callers branch with IsKind or errors.Is against
// ErrAuthentication, ErrProtocol and ErrTransport.
package mailer
