package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes peer-to-peer transfers from plan purchases.
type TransactionKind string

const (
	KindTransfer     TransactionKind = "TRANSFER"
	KindPlanPurchase TransactionKind = "PLAN_PURCHASE"
)

// Transaction is one entry of the append-only transaction log. Entries are
// created exactly once, atomically with the balance mutations they represent,
// and are never updated or deleted; the log is the sole audit trail.
//
// For KindPlanPurchase the receiver is zero: the amount is debited from the
// sender with no counterparty credit.
type Transaction struct {
	TransactionID      string          `json:"transactionID"` // Primary key (UUID)
	Kind               TransactionKind `json:"kind"`
	SenderExternalID   int64           `json:"senderExternalID"`
	ReceiverExternalID int64           `json:"receiverExternalID"`
	Amount             decimal.Decimal `json:"amount"` // Positive
	CreatedAt          time.Time       `json:"createdAt"` // Server-assigned

	// Display-time enrichment resolved from the account store; never persisted
	// on the log entry itself.
	SenderName   string `json:"senderName,omitempty"`
	ReceiverName string `json:"receiverName,omitempty"`
}
