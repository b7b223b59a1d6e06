package notification

import (
	"context"
)

// Email is one outbound message.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// Sender delivers an email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Message is an administrative notice before it is addressed.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Notifier tells the back office that something happened. Implementations
// absorb delivery failures; callers never need to handle an error.
type Notifier interface {
	NotifyAdmin(ctx context.Context, msg Message)
}
