package models

import (
	"github.com/shopspring/decimal"
)

// CardProfile is the database representation of an account's card details and
// transfer limits.
type CardProfile struct {
	AccountID    string
	Holder       string
	MaskedNumber string
	ExpiryDate   string
	DesignID     int
	MaxLimit     decimal.Decimal
	DayLimit     decimal.Decimal
	AuditFields
}
