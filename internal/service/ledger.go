// internal/service/ledger.go
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
)

// latestRunningTotal returns the running total of the user's newest ledger
// entry, or zero when the ledger is empty.
func latestRunningTotal(ctx context.Context, ledgerRepo repository.LedgerRepository, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	latest, err := ledgerRepo.GetLatestEntry(ctx, q, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return latest.RunningTotal, nil
}
