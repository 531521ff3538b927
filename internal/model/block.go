package model

import "time"

// BlockRow is one event attribute row of a block as returned by the data source.
// CreatedAt and TxHashes are only populated on the row whose Type is "block".
type BlockRow struct {
	CreatedAt    *time.Time
	TxHashes     []string
	TxHashesNull bool
	Type         string
	Key          string
	Value        *string
}

// BlockRecord is a block with its events folded by type.
type BlockRecord struct {
	Height    uint64    `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	TxHashes  []string  `json:"tx_hashes"`
	Events    []Event   `json:"events"`
}

// BlockSummary is a row of the latest blocks listing.
type BlockSummary struct {
	Height    uint64    `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}
