package amqp

import (
	"encoding/json"
	"time"

	"mizan/internal/mail"
)

// MailDispatchMessage wraps an outbound mail for queued delivery.
type MailDispatchMessage struct {
	Mail      mail.Message `json:"mail"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewMailDispatchMessage(m mail.Message) *MailDispatchMessage {
	return &MailDispatchMessage{Mail: m, Timestamp: time.Now()}
}

func (m *MailDispatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MailDispatchMessageFromJSON(data []byte) (*MailDispatchMessage, error) {
	var msg MailDispatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
