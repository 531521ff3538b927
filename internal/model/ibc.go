package model

import "time"

// IbcClient is the latest known state of an IBC light client.
type IbcClient struct {
	ClientID        string    `json:"client_id"`
	BlockID         uint64    `json:"block_id"`
	ConsensusHeight *string   `json:"consensus_height"`
	LastUpdatedAt   time.Time `json:"last_updated_at"`
	RecentTxs       []string  `json:"recent_txs"`
}

// IbcClientSummary is a row of the IBC clients listing.
type IbcClientSummary struct {
	ClientID        string    `json:"client_id"`
	BlockID         uint64    `json:"block_id"`
	ConsensusHeight *string   `json:"consensus_height"`
	LastUpdatedAt   time.Time `json:"last_updated_at"`
}

// IbcChannel describes an IBC channel and the connection and client under it.
type IbcChannel struct {
	ChannelID            string   `json:"channel_id"`
	ConnectionID         string   `json:"connection_id"`
	ClientID             string   `json:"client_id"`
	BlockID              *uint64  `json:"block_id"`
	ConsensusHeight      *string  `json:"consensus_height"`
	CounterpartyClientID *string  `json:"counterparty_client_id"`
	RecentTxs            []string `json:"recent_txs"`
}

// IbcConnection describes an IBC connection and the channels opened on it.
type IbcConnection struct {
	ConnectionID             string   `json:"connection_id"`
	ClientID                 string   `json:"client_id"`
	CounterpartyClientID     *string  `json:"counterparty_client_id"`
	CounterpartyConnectionID *string  `json:"counterparty_connection_id"`
	BlockID                  *uint64  `json:"block_id"`
	Channels                 []string `json:"channels"`
	RecentTxs                []string `json:"recent_txs"`
}
