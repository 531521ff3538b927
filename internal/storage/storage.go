package storage

import (
	"context"
	"errors"

	"explorerScope/internal/model"
)

// ErrNotFound is returned by a Source when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// Source serves raw JSON bodies for the explorer. Bodies are validated by the
// shape package before use; a Source never interprets them.
type Source interface {
	BlockRows(ctx context.Context, height uint64) ([]byte, error)
	TransactionRow(ctx context.Context, hash string) ([]byte, error)
	IbcClient(ctx context.Context, clientID string) ([]byte, error)
	IbcChannel(ctx context.Context, channelID string) ([]byte, error)
	IbcConnection(ctx context.Context, connectionID string) ([]byte, error)
	Blocks(ctx context.Context, limit, offset uint64) ([]byte, error)
	IbcClients(ctx context.Context, limit, offset uint64) ([]byte, error)
	BlocksCount(ctx context.Context) (int64, error)
	IbcClientsCount(ctx context.Context) (int64, error)
	LatestHeight(ctx context.Context) (uint64, error)
}

// Storage defines a sink for normalized blocks. Reset discards everything
// written so far and is called before an export that does not resume.
type Storage interface {
	PutBlockBatch(blocks []model.BlockRecord) error
	Reset() error
}
