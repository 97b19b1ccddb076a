package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"
)

// Envelope carries the header values that are not part of Message.
type Envelope struct {
	From      string
	Date      time.Time
	MessageID string
}

// Compose renders msg as a multipart/alternative RFC 5322 message. The HTML
// part is always present; the plain part only when msg.Body is set.
func Compose(env Envelope, msg Message) ([]byte, error) {
	plain, html, err := msg.Resolve()
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	parts := multipart.NewWriter(&body)
	if plain != "" {
		if err := writePart(parts, "text/plain", plain); err != nil {
			return nil, err
		}
	}
	if err := writePart(parts, "text/html", html); err != nil {
		return nil, err
	}
	if err := parts.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	date := env.Date
	if date.IsZero() {
		date = time.Now()
	}

	var out bytes.Buffer
	writeHeader(&out, "From", env.From)
	writeHeader(&out, "To", strings.TrimSpace(msg.To))
	writeHeader(&out, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&out, "Date", date.Format(time.RFC1123Z))
	if env.MessageID != "" {
		writeHeader(&out, "Message-ID", env.MessageID)
	}
	writeHeader(&out, "MIME-Version", "1.0")
	writeHeader(&out, "Content-Type", mime.FormatMediaType("multipart/alternative", map[string]string{
		"boundary": parts.Boundary(),
	}))
	out.WriteString("\r\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func writePart(parts *multipart.Writer, mediaType, content string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", mediaType+"; charset=utf-8")
	header.Set("Content-Transfer-Encoding", "quoted-printable")
	w, err := parts.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create %s part: %w", mediaType, err)
	}
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(content)); err != nil {
		return fmt.Errorf("encode %s part: %w", mediaType, err)
	}
	return qp.Close()
}

// messageID builds a Message-ID using the sender's domain.
func messageID(id, from string) string {
	domain := "autokit.local"
	if _, host, ok := strings.Cut(from, "@"); ok && host != "" {
		domain = host
	}
	return "<" + id + "@" + domain + ">"
}
