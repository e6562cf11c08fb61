package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of a customer account.
type Account struct {
	AccountID               string
	ExternalID              int64
	Username                string
	Email                   string
	PasswordHash            string
	Balance                 decimal.Decimal
	IsActive                bool
	SubscriptionPlan        string
	SubscriptionPurchasedAt *time.Time
	AuditFields
}
