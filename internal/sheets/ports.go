package sheets

import (
	"context"

	"kopilka/internal/core"
)

// TransactionAppender exports a single transaction as a spreadsheet row.
type TransactionAppender interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
