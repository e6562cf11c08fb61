package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer account within the core domain.
// This is the primary representation used by services.
//
// AccountID is the stable internal key assigned at registration and never
// changes. ExternalID is the short numeric id a customer shares (e.g. via QR
// code) to receive transfers; it is unique but independent of the internal key.
type Account struct {
	AccountID  string          `json:"accountID"`  // Primary key (UUID)
	ExternalID int64           `json:"externalID"` // Short human-shareable numeric id, unique
	Username   string          `json:"username"`   // Unique display name, used for recipient search
	Email      string          `json:"email"`
	Balance    decimal.Decimal `json:"balance"` // CHF; mutated only by the ledger engine
	IsActive   bool            `json:"isActive"`

	SubscriptionPlan        PlanID     `json:"subscriptionPlan"`
	SubscriptionPurchasedAt *time.Time `json:"subscriptionPurchasedAt,omitempty"`

	AuditFields
}

// Credential holds the authentication secret for an account. Kept off the
// Account struct so services that only move money never touch it.
type Credential struct {
	AccountID    string
	PasswordHash string
}
