package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
)

// TransferRequest initiates a transfer from the authenticated account.
// Exactly one of ReceiverUsername or ReceiverExternalID must be set: the
// transfer screen addresses by username, the QR flow by external id.
type TransferRequest struct {
	ReceiverUsername   string          `json:"receiverUsername"`
	ReceiverExternalID int64           `json:"receiverExternalID"`
	Amount             decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// TransferResponse returns the committed log entry.
type TransferResponse struct {
	TransactionID      string          `json:"transactionID"`
	SenderExternalID   int64           `json:"senderExternalID"`
	ReceiverExternalID int64           `json:"receiverExternalID"`
	Amount             decimal.Decimal `json:"amount"`
	Date               time.Time       `json:"date"`
}

// ToTransferResponse converts a committed domain.Transaction.
func ToTransferResponse(txn *domain.Transaction) TransferResponse {
	return TransferResponse{
		TransactionID:      txn.TransactionID,
		SenderExternalID:   txn.SenderExternalID,
		ReceiverExternalID: txn.ReceiverExternalID,
		Amount:             txn.Amount,
		Date:               txn.CreatedAt,
	}
}
