package model

import "time"

// TransactionRow is a transaction as returned by the data source, with its
// attributes already grouped per event type.
type TransactionRow struct {
	TxHash    *string
	Height    *uint64
	CreatedAt *time.Time
	Events    []Event
}

// TransactionRecord is a transaction with its events folded by type.
type TransactionRecord struct {
	TxHash    string    `json:"tx_hash"`
	Height    uint64    `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	Events    []Event   `json:"events"`
}
