package mapping

import (
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	"github.com/swisspay/swisspay_backend/internal/models"
)

// ToDomainCardProfile converts a card row to the domain representation.
func ToDomainCardProfile(m models.CardProfile) domain.CardProfile {
	return domain.CardProfile{
		AccountID:    m.AccountID,
		Holder:       m.Holder,
		MaskedNumber: m.MaskedNumber,
		ExpiryDate:   m.ExpiryDate,
		DesignID:     m.DesignID,
		MaxLimit:     m.MaxLimit,
		DayLimit:     m.DayLimit,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelCardProfile converts a domain card profile to its database
// representation.
func ToModelCardProfile(d domain.CardProfile) models.CardProfile {
	return models.CardProfile{
		AccountID:    d.AccountID,
		Holder:       d.Holder,
		MaskedNumber: d.MaskedNumber,
		ExpiryDate:   d.ExpiryDate,
		DesignID:     d.DesignID,
		MaxLimit:     d.MaxLimit,
		DayLimit:     d.DayLimit,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}
