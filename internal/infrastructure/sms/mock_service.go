package sms

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MockSender logs instead of hitting the gateway. Used in development and
// when no API key is configured.
type MockSender struct{}

func NewMockSender() *MockSender {
	return &MockSender{}
}

var _ Sender = (*MockSender)(nil)

func (s *MockSender) Send(ctx context.Context, phone, message string) error {
	log.Info().
		Str("to", phone).
		Str("message", message).
		Msg("[MOCK] SMS sent successfully")
	return nil
}
