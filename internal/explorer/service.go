// Package explorer resolves search queries into normalized records by
// fetching them from a storage.Source, asserting their shape, and folding
// their events.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"explorerScope/internal/metrics"
	"explorerScope/internal/model"
	"explorerScope/internal/normalize"
	"explorerScope/internal/search"
	"explorerScope/internal/shape"
	"explorerScope/internal/storage"
)

// DefaultPageSize is the number of rows per page of the list endpoints.
const DefaultPageSize = 10

// ErrInvalidPage is returned for negative page numbers.
var ErrInvalidPage = errors.New("invalid page")

// Service is safe for concurrent use; it keeps no per-request state.
type Service struct {
	source   storage.Source
	opts     normalize.Options
	pageSize int
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for defect and rejection logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExcludeTypes drops events of the given types from resolved records.
func WithExcludeTypes(types []string) Option {
	return func(s *Service) {
		s.opts.ExcludeTypes = append([]string(nil), types...)
	}
}

// WithPageSize sets the number of rows per list page. Non-positive sizes are ignored.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// New returns a Service reading records from source.
func New(source storage.Source, opts ...Option) *Service {
	s := &Service{
		source:   source,
		pageSize: DefaultPageSize,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a resolved search: the classified query and its record.
type Result struct {
	Query  search.Query
	Record interface{}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   search.Kind `json:"kind"`
		Value  string      `json:"value"`
		Result interface{} `json:"result"`
	}{
		Kind:   r.Query.Kind(),
		Value:  r.Query.Value(),
		Result: r.Record,
	})
}

// Search classifies raw and resolves the record it identifies.
func (s *Service) Search(ctx context.Context, raw string) (Result, error) {
	query, err := s.classify(raw, func(raw string) (search.Query, error) {
		return search.Classify(raw)
	})
	if err != nil {
		return Result{}, err
	}
	return s.Resolve(ctx, query)
}

// SearchAs is Search restricted to a single kind.
func (s *Service) SearchAs(ctx context.Context, raw string, kind search.Kind) (Result, error) {
	query, err := s.classify(raw, func(raw string) (search.Query, error) {
		return search.ClassifyAs(raw, kind)
	})
	if err != nil {
		return Result{}, err
	}
	return s.Resolve(ctx, query)
}

func (s *Service) classify(raw string, classify func(string) (search.Query, error)) (search.Query, error) {
	query, err := classify(raw)
	switch {
	case err == nil:
		metrics.SearchQueriesTotal.WithLabelValues(string(query.Kind())).Inc()
		return query, nil
	case errors.Is(err, search.ErrUnrecognized):
		metrics.SearchUnrecognizedTotal.Inc()
	case errors.Is(err, search.ErrNormalizationFailed):
		s.logger.Error("grammar matched but normalization failed", zap.String("query", raw), zap.Error(err))
		metrics.ResolveErrors.WithLabelValues("unknown", "classify").Inc()
	}
	return nil, err
}

// Resolve fetches and normalizes the record identified by query.
func (s *Service) Resolve(ctx context.Context, query search.Query) (Result, error) {
	var (
		record interface{}
		err    error
	)
	switch q := query.(type) {
	case search.BlockHeight:
		record, err = s.Block(ctx, uint64(q))
	case search.TxHash:
		record, err = s.Transaction(ctx, string(q))
	case search.IbcClientID:
		record, err = s.IbcClient(ctx, string(q))
	case search.IbcChannelID:
		record, err = s.IbcChannel(ctx, string(q))
	case search.IbcConnectionID:
		record, err = s.IbcConnection(ctx, string(q))
	default:
		return Result{}, fmt.Errorf("%w: unhandled query kind %T", search.ErrNormalizationFailed, query)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Query: query, Record: record}, nil
}

func (s *Service) Block(ctx context.Context, height uint64) (model.BlockRecord, error) {
	body, err := s.source.BlockRows(ctx, height)
	if err != nil {
		return model.BlockRecord{}, fmt.Errorf("fetch block %d: %w", height, err)
	}
	rows, err := shape.BlockRows(body)
	if err != nil {
		return model.BlockRecord{}, s.rejected(search.KindBlockHeight, "shape", fmt.Errorf("block %d: %w", height, err))
	}
	record, err := normalize.BlockRows(height, rows, s.opts)
	if err != nil {
		return model.BlockRecord{}, s.rejected(search.KindBlockHeight, "structure", fmt.Errorf("block %d: %w", height, err))
	}
	return record, nil
}

func (s *Service) Transaction(ctx context.Context, hash string) (model.TransactionRecord, error) {
	body, err := s.source.TransactionRow(ctx, hash)
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("fetch transaction %s: %w", hash, err)
	}
	row, err := shape.TransactionRow(body)
	if err != nil {
		return model.TransactionRecord{}, s.rejected(search.KindTxHash, "shape", fmt.Errorf("transaction %s: %w", hash, err))
	}
	record, err := normalize.TransactionRow(row, s.opts)
	if err != nil {
		return model.TransactionRecord{}, s.rejected(search.KindTxHash, "structure", fmt.Errorf("transaction %s: %w", hash, err))
	}
	return record, nil
}

func (s *Service) IbcClient(ctx context.Context, clientID string) (model.IbcClient, error) {
	body, err := s.source.IbcClient(ctx, clientID)
	if err != nil {
		return model.IbcClient{}, fmt.Errorf("fetch ibc client %s: %w", clientID, err)
	}
	client, err := shape.IbcClient(body)
	if err != nil {
		return model.IbcClient{}, s.rejected(search.KindIbcClient, "shape", fmt.Errorf("ibc client %s: %w", clientID, err))
	}
	return client, nil
}

func (s *Service) IbcChannel(ctx context.Context, channelID string) (model.IbcChannel, error) {
	body, err := s.source.IbcChannel(ctx, channelID)
	if err != nil {
		return model.IbcChannel{}, fmt.Errorf("fetch ibc channel %s: %w", channelID, err)
	}
	channel, err := shape.IbcChannel(body)
	if err != nil {
		return model.IbcChannel{}, s.rejected(search.KindIbcChannel, "shape", fmt.Errorf("ibc channel %s: %w", channelID, err))
	}
	return channel, nil
}

func (s *Service) IbcConnection(ctx context.Context, connectionID string) (model.IbcConnection, error) {
	body, err := s.source.IbcConnection(ctx, connectionID)
	if err != nil {
		return model.IbcConnection{}, fmt.Errorf("fetch ibc connection %s: %w", connectionID, err)
	}
	conn, err := shape.IbcConnection(body)
	if err != nil {
		return model.IbcConnection{}, s.rejected(search.KindIbcConnection, "shape", fmt.Errorf("ibc connection %s: %w", connectionID, err))
	}
	return conn, nil
}

func (s *Service) rejected(kind search.Kind, stage string, err error) error {
	metrics.ResolveErrors.WithLabelValues(string(kind), stage).Inc()
	s.logger.Warn("record rejected", zap.String("kind", string(kind)), zap.String("stage", stage), zap.Error(err))
	return err
}
