package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of one transaction log entry.
// ReceiverExternalID is NULL for plan purchases.
type Transaction struct {
	TransactionID      string
	Kind               string
	SenderExternalID   int64
	ReceiverExternalID *int64
	Amount             decimal.Decimal
	CreatedAt          time.Time
}
