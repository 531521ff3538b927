package normalize

import (
	"strings"

	"explorerScope/internal/model"
)

// TransactionRow re-wraps a transaction whose attributes were grouped per type
// by the data source. Entries sharing a type are merged in first-seen order.
func TransactionRow(row model.TransactionRow, opts Options) (model.TransactionRecord, error) {
	if row.TxHash == nil || strings.TrimSpace(*row.TxHash) == "" {
		return model.TransactionRecord{}, &MissingFieldError{Field: "tx_hash"}
	}
	if row.Height == nil {
		return model.TransactionRecord{}, &MissingFieldError{Field: "height"}
	}
	if row.CreatedAt == nil || row.CreatedAt.IsZero() {
		return model.TransactionRecord{}, &MissingFieldError{Field: "created_at"}
	}

	fold := newEventFold(len(row.Events), opts)
	for _, event := range row.Events {
		fold.add(event.Type, event.Attributes...)
	}

	return model.TransactionRecord{
		TxHash:    *row.TxHash,
		Height:    *row.Height,
		CreatedAt: row.CreatedAt.UTC(),
		Events:    fold.result(),
	}, nil
}
