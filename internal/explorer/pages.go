package explorer

import (
	"context"
	"fmt"

	"explorerScope/internal/model"
	"explorerScope/internal/shape"
)

// Blocks returns page (zero based) of the latest blocks, newest first.
func (s *Service) Blocks(ctx context.Context, page int) (model.Page[model.BlockSummary], error) {
	limit, offset, err := s.window(page)
	if err != nil {
		return model.Page[model.BlockSummary]{}, err
	}
	body, err := s.source.Blocks(ctx, limit, offset)
	if err != nil {
		return model.Page[model.BlockSummary]{}, fmt.Errorf("fetch blocks page %d: %w", page, err)
	}
	results, err := shape.BlockSummaries(body)
	if err != nil {
		return model.Page[model.BlockSummary]{}, s.rejected("BLOCKS", "shape", err)
	}
	count, err := s.source.BlocksCount(ctx)
	if err != nil {
		return model.Page[model.BlockSummary]{}, fmt.Errorf("count blocks: %w", err)
	}
	return model.Page[model.BlockSummary]{Pages: model.PageCount(count, s.pageSize), Results: results}, nil
}

// IbcClients returns page (zero based) of known IBC clients, most recently
// updated first.
func (s *Service) IbcClients(ctx context.Context, page int) (model.Page[model.IbcClientSummary], error) {
	limit, offset, err := s.window(page)
	if err != nil {
		return model.Page[model.IbcClientSummary]{}, err
	}
	body, err := s.source.IbcClients(ctx, limit, offset)
	if err != nil {
		return model.Page[model.IbcClientSummary]{}, fmt.Errorf("fetch ibc clients page %d: %w", page, err)
	}
	results, err := shape.IbcClientSummaries(body)
	if err != nil {
		return model.Page[model.IbcClientSummary]{}, s.rejected("IBC_CLIENTS", "shape", err)
	}
	count, err := s.source.IbcClientsCount(ctx)
	if err != nil {
		return model.Page[model.IbcClientSummary]{}, fmt.Errorf("count ibc clients: %w", err)
	}
	return model.Page[model.IbcClientSummary]{Pages: model.PageCount(count, s.pageSize), Results: results}, nil
}

// LatestHeight returns the highest indexed block height.
func (s *Service) LatestHeight(ctx context.Context) (uint64, error) {
	height, err := s.source.LatestHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest height: %w", err)
	}
	return height, nil
}

func (s *Service) window(page int) (limit, offset uint64, err error) {
	if page < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	return uint64(s.pageSize), uint64(page) * uint64(s.pageSize), nil
}
