package repositories

// RepositoryProvider bundles all repository facades for injection into the
// service layer.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
	CardRepo    CardRepositoryFacade
}
