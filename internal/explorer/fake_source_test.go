package explorer

import (
	"context"

	"explorerScope/internal/storage"
)

// fakeSource serves canned bodies keyed by lookup value.
type fakeSource struct {
	blocks       map[uint64]string
	transactions map[string]string
	clients      map[string]string
	channels     map[string]string
	connections  map[string]string
	blocksPage   string
	clientsPage  string
	blocksCount  int64
	clientsCount int64
	latest       uint64
	err          error

	lastLimit  uint64
	lastOffset uint64
}

func lookup[K comparable](values map[K]string, key K, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	body, ok := values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return []byte(body), nil
}

func (f *fakeSource) BlockRows(_ context.Context, height uint64) ([]byte, error) {
	return lookup(f.blocks, height, f.err)
}

func (f *fakeSource) TransactionRow(_ context.Context, hash string) ([]byte, error) {
	return lookup(f.transactions, hash, f.err)
}

func (f *fakeSource) IbcClient(_ context.Context, clientID string) ([]byte, error) {
	return lookup(f.clients, clientID, f.err)
}

func (f *fakeSource) IbcChannel(_ context.Context, channelID string) ([]byte, error) {
	return lookup(f.channels, channelID, f.err)
}

func (f *fakeSource) IbcConnection(_ context.Context, connectionID string) ([]byte, error) {
	return lookup(f.connections, connectionID, f.err)
}

func (f *fakeSource) Blocks(_ context.Context, limit, offset uint64) ([]byte, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.blocksPage), nil
}

func (f *fakeSource) IbcClients(_ context.Context, limit, offset uint64) ([]byte, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.clientsPage), nil
}

func (f *fakeSource) BlocksCount(context.Context) (int64, error) {
	return f.blocksCount, f.err
}

func (f *fakeSource) IbcClientsCount(context.Context) (int64, error) {
	return f.clientsCount, f.err
}

func (f *fakeSource) LatestHeight(context.Context) (uint64, error) {
	return f.latest, f.err
}
