// Package notify delivers appointment reminders to citizens over email and
// WhatsApp.
package notify

import "context"

// Message is one reminder to deliver.
type Message struct {
	To      string // email address or phone number depending on the channel
	Subject string // ignored by channels without a subject line
	Body    string
}

// Notifier delivers a message over one channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
	Channel() string
}
