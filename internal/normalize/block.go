package normalize

import (
	"explorerScope/internal/model"
)

// BlockMarkerType is the event type of the row carrying block metadata.
const BlockMarkerType = "block"

// BlockRows folds the attribute rows of one block into a BlockRecord. The first
// row of type "block" supplies created_at and tx_hashes; every row, the marker
// included, becomes an attribute of its type's event.
func BlockRows(height uint64, rows []model.BlockRow, opts Options) (model.BlockRecord, error) {
	fold := newEventFold(8, opts)
	var marker *model.BlockRow

	for i := range rows {
		row := &rows[i]
		if marker == nil && row.Type == BlockMarkerType {
			marker = row
		}
		fold.add(row.Type, model.Attribute{Key: row.Key, Value: row.Value})
	}

	if marker == nil {
		return model.BlockRecord{}, &MissingMarkerError{Marker: BlockMarkerType}
	}
	if marker.CreatedAt == nil || marker.CreatedAt.IsZero() {
		return model.BlockRecord{}, &MissingFieldError{Field: "created_at"}
	}

	txHashes := marker.TxHashes
	if txHashes == nil {
		if !marker.TxHashesNull {
			return model.BlockRecord{}, &MissingFieldError{Field: "tx_hashes"}
		}
		txHashes = []string{}
	}

	return model.BlockRecord{
		Height:    height,
		CreatedAt: marker.CreatedAt.UTC(),
		TxHashes:  txHashes,
		Events:    fold.result(),
	}, nil
}
