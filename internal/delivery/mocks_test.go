package delivery

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MockSender implements Sender for testing.
type MockSender struct {
	SendFunc func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Sent     []tgbotapi.Chattable
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.Sent = append(m.Sent, c)
	if m.SendFunc != nil {
		return m.SendFunc(c)
	}
	return tgbotapi.Message{}, nil
}
