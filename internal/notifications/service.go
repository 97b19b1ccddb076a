package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"autokit/internal/config"
)

const userAgent = "autokit/0.1.0"

// Event identifies a tool outcome.
type Event string

const (
	EventOrganizeCompleted Event = "organize_completed"
	EventOrganizePlanned   Event = "organize_planned"
	EventQuizGraded        Event = "quiz_graded"
	EventEmailSent         Event = "email_sent"
	EventToolFailed        Event = "tool_failed"
	EventTest              Event = "test"
)

// Payload carries event fields. Values are formatted with %v.
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a noop when no topic is configured.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

// format renders the message for event; ok is false for events that are
// never published.
func format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventOrganizeCompleted:
		body := fmt.Sprintf("📁 Organized %s: %s moved, %s skipped",
			payload.text("dir"), payload.text("moved"), payload.text("skipped"))
		failed := payload.text("failed")
		tags := []string{"autokit", "organizer", "completed"}
		if failed != "" && failed != "0" {
			body += fmt.Sprintf(", %s failed", failed)
			tags[2] = "partial"
		}
		return message{title: "autokit - Files Organized", body: body, tags: tags}, true
	case EventQuizGraded:
		return message{
			title: "autokit - Quiz Graded",
			body: fmt.Sprintf("📝 %s: %s/%s correct (%s%%)",
				payload.text("file"), payload.text("correct"), payload.text("total"), payload.text("percentage")),
			tags: []string{"autokit", "mcq", "graded"},
		}, true
	case EventEmailSent:
		body := fmt.Sprintf("✉️ Email sent to %s", payload.text("recipient"))
		if subject := payload.text("subject"); subject != "" {
			body += fmt.Sprintf("\nSubject: %s", subject)
		}
		return message{title: "autokit - Email Sent", body: body, tags: []string{"autokit", "email", "sent"}}, true
	case EventToolFailed:
		var builder strings.Builder
		builder.WriteString("❌ Error")
		if tool := payload.text("tool"); tool != "" {
			builder.WriteString(" in ")
			builder.WriteString(tool)
		}
		builder.WriteString(": ")
		if errText := payload.text("error"); errText != "" {
			builder.WriteString(errText)
		} else {
			builder.WriteString("unknown")
		}
		return message{
			title:    "autokit - Error",
			body:     builder.String(),
			tags:     []string{"autokit", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "autokit - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"autokit", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (p Payload) text(key string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return ""
	}
	if f, ok := value.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
