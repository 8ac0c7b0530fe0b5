package amqp

import (
	"encoding/json"
	"time"

	"bahtbot/internal/core"
)

// TransactionRecordedMessage announces a ledger row that was successfully
// appended, for downstream consumers (dashboards, archival).
type TransactionRecordedMessage struct {
	RecordedAt time.Time `json:"recorded_at"`
	Type       string    `json:"type"`
	Item       string    `json:"item"`
	Amount     int64     `json:"amount"`
	Balance    int64     `json:"balance"`
	Category   string    `json:"category"`
}

// LowBalanceMessage announces a transaction that left the balance below
// the configured threshold. One message per qualifying transaction.
type LowBalanceMessage struct {
	Balance   int64     `json:"balance"`
	Threshold int64     `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(t core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		RecordedAt: t.Timestamp,
		Type:       string(t.Type),
		Item:       t.Item,
		Amount:     t.Amount,
		Balance:    t.Balance,
		Category:   t.CategoryOrDefault(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *LowBalanceMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
