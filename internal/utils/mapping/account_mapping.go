package mapping

import (
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	"github.com/swisspay/swisspay_backend/internal/models"
)

// ToDomainAccount converts a database account row to the domain representation.
// The password hash stays behind in the model; see domain.Credential.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:               m.AccountID,
		ExternalID:              m.ExternalID,
		Username:                m.Username,
		Email:                   m.Email,
		Balance:                 m.Balance,
		IsActive:                m.IsActive,
		SubscriptionPlan:        domain.PlanID(m.SubscriptionPlan),
		SubscriptionPurchasedAt: m.SubscriptionPurchasedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelAccount converts a domain account to its database representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:               d.AccountID,
		ExternalID:              d.ExternalID,
		Username:                d.Username,
		Email:                   d.Email,
		Balance:                 d.Balance,
		IsActive:                d.IsActive,
		SubscriptionPlan:        string(d.SubscriptionPlan),
		SubscriptionPurchasedAt: d.SubscriptionPurchasedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainAccountSlice converts a slice of account rows.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
