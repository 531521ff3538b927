package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"explorerScope/internal/metrics"
	"explorerScope/internal/retry"
	"explorerScope/internal/storage"
)

// Config holds connection settings for the Store.
type Config struct {
	DSN          string
	MaxRetries   int
	RetryBackoff time.Duration
}

// Store serves explorer records from a CometBFT psql indexer database.
// Each call acquires its own pooled connection and releases it before
// returning.
type Store struct {
	pool   *pgxpool.Pool
	cfg    Config
	logger *zap.Logger
}

var _ storage.Source = (*Store)(nil)

// NewStore opens a connection pool for cfg.DSN.
func NewStore(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, cfg: cfg, logger: logger}, nil
}

// Close releases every pooled connection.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that a connection can be acquired and used.
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, "ping", func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.Ping(ctx)
	})
}

// ReportPoolStats publishes pool gauges every interval until ctx is done.
func (s *Store) ReportPoolStats(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		stat := s.pool.Stat()
		metrics.DBPoolTotalConns.Set(float64(stat.TotalConns()))
		metrics.DBPoolAcquiredConns.Set(float64(stat.AcquiredConns()))
		metrics.DBPoolIdleConns.Set(float64(stat.IdleConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Store) BlockRows(ctx context.Context, height uint64) ([]byte, error) {
	if height > maxBigint {
		return nil, storage.ErrNotFound
	}
	return s.lookup(ctx, "block_rows", blockRowsSQL, int64(height))
}

func (s *Store) TransactionRow(ctx context.Context, hash string) ([]byte, error) {
	return s.lookup(ctx, "transaction_row", transactionRowSQL, hash)
}

func (s *Store) IbcClient(ctx context.Context, clientID string) ([]byte, error) {
	return s.lookup(ctx, "ibc_client", ibcClientSQL, clientID)
}

func (s *Store) IbcChannel(ctx context.Context, channelID string) ([]byte, error) {
	return s.lookup(ctx, "ibc_channel", ibcChannelSQL, channelID)
}

func (s *Store) IbcConnection(ctx context.Context, connectionID string) ([]byte, error) {
	return s.lookup(ctx, "ibc_connection", ibcConnectionSQL, connectionID)
}

func (s *Store) Blocks(ctx context.Context, limit, offset uint64) ([]byte, error) {
	query, args, err := blocksPageQuery(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("build blocks query: %w", err)
	}
	return s.lookup(ctx, "blocks_page", query, args...)
}

func (s *Store) IbcClients(ctx context.Context, limit, offset uint64) ([]byte, error) {
	query, args, err := ibcClientsPageQuery(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("build ibc clients query: %w", err)
	}
	return s.lookup(ctx, "ibc_clients_page", query, args...)
}

func (s *Store) BlocksCount(ctx context.Context) (int64, error) {
	query, args, err := blocksCountQuery()
	if err != nil {
		return 0, fmt.Errorf("build blocks count query: %w", err)
	}
	return s.count(ctx, "blocks_count", query, args...)
}

func (s *Store) IbcClientsCount(ctx context.Context) (int64, error) {
	query, args, err := ibcClientsCountQuery()
	if err != nil {
		return 0, fmt.Errorf("build ibc clients count query: %w", err)
	}
	return s.count(ctx, "ibc_clients_count", query, args...)
}

// LatestHeight returns the highest indexed height, or 0 for an empty index.
func (s *Store) LatestHeight(ctx context.Context) (uint64, error) {
	var height int64
	err := s.withConn(ctx, "latest_height", func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, latestHeightSQL).Scan(&height)
	})
	if err != nil {
		return 0, err
	}
	return uint64(height), nil
}

const maxBigint = uint64(1<<63 - 1)

// lookup runs a query returning one json text value. No row and a NULL
// value both mean the record does not exist.
func (s *Store) lookup(ctx context.Context, name, query string, args ...interface{}) ([]byte, error) {
	var body *string
	err := s.withConn(ctx, name, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&body)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, storage.ErrNotFound
	}
	return []byte(*body), nil
}

func (s *Store) count(ctx context.Context, name, query string, args ...interface{}) (int64, error) {
	var n int64
	err := s.withConn(ctx, name, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	})
	return n, err
}

func (s *Store) withConn(ctx context.Context, name string, fn func(context.Context, *pgxpool.Conn) error) error {
	started := time.Now()
	defer func() {
		metrics.DBQueryLatency.WithLabelValues(name).Observe(time.Since(started).Seconds())
	}()

	var conn *pgxpool.Conn
	err := retry.Do(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		conn, err = s.pool.Acquire(ctx)
		if err != nil {
			s.logger.Warn("acquire connection failed", zap.String("query", name), zap.Error(err))
		}
		return err
	})
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(name).Inc()
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := fn(ctx, conn); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			metrics.DBQueryErrors.WithLabelValues(name).Inc()
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
