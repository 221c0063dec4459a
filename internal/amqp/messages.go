package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Operations carried by a LedgerChangedMessage.
const (
	OperationCreated = "created"
	OperationUpdated = "updated"
)

// LedgerChangedMessage announces that a transaction was written. It carries
// only the id; consumers refetch the ledger.
type LedgerChangedMessage struct {
	EventID       string    `json:"event_id"`
	TransactionID string    `json:"transaction_id"`
	Operation     string    `json:"operation"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(transactionID, operation string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		EventID:       uuid.NewString(),
		TransactionID: transactionID,
		Operation:     operation,
		Timestamp:     time.Now().UTC(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.TransactionID == "" {
		return nil, errors.New("ledger changed message without transaction_id")
	}
	return &msg, nil
}
