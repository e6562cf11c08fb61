package services

import (
	"context"
	"log/slog"

	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
	"github.com/swisspay/swisspay_backend/internal/platform/cache"
)

type HistoryService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	nameCache   *cache.NameCache
}

func NewHistoryService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, nameCache *cache.NameCache) *HistoryService {
	return &HistoryService{accountRepo: accountRepo, ledgerRepo: ledgerRepo, nameCache: nameCache}
}

var _ portssvc.HistorySvcFacade = (*HistoryService)(nil)

// ListTransactions returns a page of log entries involving the account, newest
// first, each enriched with the counterparties' current display names. Names
// are resolved at read time: the log stores only external ids, so renames are
// reflected everywhere immediately.
func (s *HistoryService) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	txns, next, err := s.ledgerRepo.ListTransactionsByExternalID(ctx, account.ExternalID, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, nil, err
	}

	if err := s.enrichNames(ctx, txns); err != nil {
		logger.Error("Failed to resolve counterparty names", slog.String("error", err.Error()))
		return nil, nil, err
	}

	return txns, next, nil
}

// enrichNames fills SenderName/ReceiverName on each entry, consulting the
// cache first and falling back to one batched account lookup for the misses.
func (s *HistoryService) enrichNames(ctx context.Context, txns []domain.Transaction) error {
	idSet := make(map[int64]struct{})
	for _, txn := range txns {
		idSet[txn.SenderExternalID] = struct{}{}
		if txn.ReceiverExternalID != 0 {
			idSet[txn.ReceiverExternalID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, misses := s.nameCache.GetNames(ctx, ids)
	if len(misses) > 0 {
		accounts, err := s.accountRepo.FindAccountsByExternalIDs(ctx, misses)
		if err != nil {
			return err
		}
		fetched := make(map[int64]string, len(accounts))
		for id, acc := range accounts {
			names[id] = acc.Username
			fetched[id] = acc.Username
		}
		s.nameCache.SetNames(ctx, fetched)
	}

	for i := range txns {
		txns[i].SenderName = names[txns[i].SenderExternalID]
		if txns[i].ReceiverExternalID != 0 {
			txns[i].ReceiverName = names[txns[i].ReceiverExternalID]
		}
	}
	return nil
}
