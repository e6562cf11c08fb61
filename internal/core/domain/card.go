package domain

import (
	"github.com/shopspring/decimal"
)

// CardProfile holds the payment-card details attached to an account, including
// the configurable transfer limits. Independent of the transfer logic itself:
// the ledger engine never reads it; callers consult MaxLimit before invoking a
// transfer.
type CardProfile struct {
	AccountID    string          `json:"accountID"`
	Holder       string          `json:"holder"`
	MaskedNumber string          `json:"maskedNumber"`
	ExpiryDate   string          `json:"expiryDate"` // YYYY-MM-DD
	DesignID     int             `json:"designID"`
	MaxLimit     decimal.Decimal `json:"maxLimit"` // Per-transfer ceiling, advisory
	DayLimit     decimal.Decimal `json:"dayLimit"`
	AuditFields
}

// CardUpdate carries a partial card edit. Nil fields are left untouched.
type CardUpdate struct {
	Holder       *string
	MaskedNumber *string
	ExpiryDate   *string
	DesignID     *int
	MaxLimit     *decimal.Decimal
	DayLimit     *decimal.Decimal
}
