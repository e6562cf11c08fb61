package ports

// ServiceContainer holds all service facades for injection into handlers.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Ledger       LedgerSvcFacade
	History      HistorySvcFacade
	Card         CardSvcFacade
	Subscription SubscriptionSvcFacade
}
