package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// ListTransactionsParams defines query parameters for transaction history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is one history entry, enriched with the counterparties'
// current display names. Outgoing is relative to the requesting account.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	Kind               string          `json:"kind"`
	SenderExternalID   int64           `json:"senderExternalID"`
	SenderName         string          `json:"senderName"`
	ReceiverExternalID int64           `json:"receiverExternalID"`
	ReceiverName       string          `json:"receiverName"`
	Amount             decimal.Decimal `json:"amount"`
	Date               time.Time       `json:"date"`
	Outgoing           bool            `json:"outgoing"`
}

// ListTransactionsResponse wraps a history page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts an enriched domain.Transaction for display to
// the account identified by viewerExternalID.
func ToTransactionResponse(txn domain.Transaction, viewerExternalID int64) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		Kind:               string(txn.Kind),
		SenderExternalID:   txn.SenderExternalID,
		SenderName:         txn.SenderName,
		ReceiverExternalID: txn.ReceiverExternalID,
		ReceiverName:       txn.ReceiverName,
		Amount:             txn.Amount,
		Date:               txn.CreatedAt,
		Outgoing:           txn.SenderExternalID == viewerExternalID,
	}
}
