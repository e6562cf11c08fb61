package services

import (
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/platform/cache"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. nameCache may be nil, which disables display-name caching.
func NewServiceContainer(repos portsrepo.RepositoryProvider, nameCache *cache.NameCache) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, nameCache),
		Ledger:       NewLedgerService(repos.AccountRepo, repos.LedgerRepo),
		History:      NewHistoryService(repos.AccountRepo, repos.LedgerRepo, nameCache),
		Card:         NewCardService(repos.AccountRepo, repos.CardRepo),
		Subscription: NewSubscriptionService(repos.AccountRepo, repos.LedgerRepo),
	}
}
