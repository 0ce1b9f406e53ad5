package mail

import "sync"

// SentMessage records one delivery made through a MockSender.
type SentMessage struct {
	Subject    string
	Body       string
	Recipients []string
}

// MockSender is a Sender implementation for tests.
type MockSender struct {
	mu       sync.Mutex
	Disabled bool
	Err      error
	Messages []SentMessage
}

// Enabled reports the configured state.
func (m *MockSender) Enabled() bool {
	return !m.Disabled
}

// Send records the message and returns the configured error.
func (m *MockSender) Send(subject, body string, recipients []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, SentMessage{
		Subject:    subject,
		Body:       body,
		Recipients: append([]string(nil), recipients...),
	})
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.Messages...)
}
