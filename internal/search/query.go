// Package search classifies free-form explorer input into one of the supported
// identifier kinds.
package search

import "strconv"

// Kind names the identifier grammar a query matched.
type Kind string

const (
	KindTxHash        Kind = "TX_HASH"
	KindBlockHeight   Kind = "BLOCK_HEIGHT"
	KindIbcClient     Kind = "IBC_CLIENT"
	KindIbcChannel    Kind = "IBC_CHANNEL"
	KindIbcConnection Kind = "IBC_CONNECTION"
)

// Query is a classified search input. The implementations in this package are
// the only ones; their values have already passed full grammar validation.
type Query interface {
	Kind() Kind
	Value() string
	query()
}

// TxHash is a transaction hash: 64 uppercase hex characters without prefix.
type TxHash string

// BlockHeight is a non-negative block height.
type BlockHeight uint64

// IbcClientID is an IBC light client identifier, e.g. "07-tendermint-0".
type IbcClientID string

// IbcChannelID is an IBC channel identifier, e.g. "channel-0".
type IbcChannelID string

// IbcConnectionID is an IBC connection identifier, e.g. "connection-0".
type IbcConnectionID string

func (TxHash) Kind() Kind          { return KindTxHash }
func (BlockHeight) Kind() Kind     { return KindBlockHeight }
func (IbcClientID) Kind() Kind     { return KindIbcClient }
func (IbcChannelID) Kind() Kind    { return KindIbcChannel }
func (IbcConnectionID) Kind() Kind { return KindIbcConnection }

func (q TxHash) Value() string          { return string(q) }
func (q BlockHeight) Value() string     { return strconv.FormatUint(uint64(q), 10) }
func (q IbcClientID) Value() string     { return string(q) }
func (q IbcChannelID) Value() string    { return string(q) }
func (q IbcConnectionID) Value() string { return string(q) }

func (TxHash) query()          {}
func (BlockHeight) query()     {}
func (IbcClientID) query()     {}
func (IbcChannelID) query()    {}
func (IbcConnectionID) query() {}
