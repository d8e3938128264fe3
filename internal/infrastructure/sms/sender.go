// Package sms talks to the outbound SMS gateway. Delivery is best-effort:
// callers treat a returned error as a failed send for that recipient and
// move on.
package sms

import "context"

// Sender sends a single text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}
