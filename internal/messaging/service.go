// Package messaging provides pluggable message delivery for AibouCheck.
//
// A Service sends outgoing messages and surfaces incoming responses
// and delivery receipts on channels. Send failures are typed errors
// returned to the caller; the core engine never sees (or swallows)
// transport errors.
package messaging

import (
	"context"
	"regexp"
	"time"

	"github.com/harulab/AibouCheck/internal/models"
)

// Shared channel configuration.
const (
	// DefaultChannelBufferSize defines the buffer size for receipt and
	// response channels.
	DefaultChannelBufferSize = 100
	// DefaultChannelTimeout bounds non-blocking channel hand-offs.
	DefaultChannelTimeout = 1 * time.Second
)

// phoneNumberRegex strips everything but digits during recipient
// canonicalization.
var phoneNumberRegex = regexp.MustCompile(`[^0-9]`)

// Service defines a pluggable message delivery abstraction.
type Service interface {
	// ValidateAndCanonicalizeRecipient validates and canonicalizes a
	// recipient identifier according to the transport's rules.
	ValidateAndCanonicalizeRecipient(recipient string) (string, error)

	// SendMessage sends a message to a recipient.
	SendMessage(ctx context.Context, to string, body string) error

	// Start begins any background processing (e.g. event polling).
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error

	// Receipts returns a channel of delivery status events.
	Receipts() <-chan models.Receipt

	// Responses returns a channel of incoming user messages.
	Responses() <-chan models.Response
}
