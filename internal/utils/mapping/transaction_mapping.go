package mapping

import (
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	"github.com/swisspay/swisspay_backend/internal/models"
)

// ToDomainTransaction converts a transaction log row to the domain
// representation. A NULL receiver (plan purchase) maps to zero.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var receiver int64
	if m.ReceiverExternalID != nil {
		receiver = *m.ReceiverExternalID
	}
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Kind:               domain.TransactionKind(m.Kind),
		SenderExternalID:   m.SenderExternalID,
		ReceiverExternalID: receiver,
		Amount:             m.Amount,
		CreatedAt:          m.CreatedAt,
	}
}

// ToModelTransaction converts a domain transaction to its database
// representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:    d.TransactionID,
		Kind:             string(d.Kind),
		SenderExternalID: d.SenderExternalID,
		Amount:           d.Amount,
		CreatedAt:        d.CreatedAt,
	}
	if d.Kind != domain.KindPlanPurchase {
		receiver := d.ReceiverExternalID
		m.ReceiverExternalID = &receiver
	}
	return m
}

// ToDomainTransactionSlice converts a slice of transaction rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
