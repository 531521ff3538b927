package shape

import (
	"explorerScope/internal/model"
)

// BlockRows decodes the attribute rows of a single block.
func BlockRows(body []byte) ([]model.BlockRow, error) {
	root, err := parseRoot(body, true)
	if err != nil {
		return nil, err
	}
	items := root.Array()
	rows := make([]model.BlockRow, 0, len(items))
	for i, item := range items {
		obj, err := newObject(item, elementPath("rows", i))
		if err != nil {
			return nil, err
		}
		var row model.BlockRow
		if row.Type, err = obj.String("type"); err != nil {
			return nil, err
		}
		if row.Key, err = obj.String("key"); err != nil {
			return nil, err
		}
		if row.Value, err = obj.NullableString("value"); err != nil {
			return nil, err
		}
		if row.CreatedAt, err = obj.NullableTime("created_at"); err != nil {
			return nil, err
		}
		if row.TxHashes, row.TxHashesNull, err = obj.NullableStrings("tx_hashes"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BlockSummaries decodes a page of the latest blocks listing.
func BlockSummaries(body []byte) ([]model.BlockSummary, error) {
	root, err := parseRoot(body, true)
	if err != nil {
		return nil, err
	}
	items := root.Array()
	out := make([]model.BlockSummary, 0, len(items))
	for i, item := range items {
		obj, err := newObject(item, elementPath("blocks", i))
		if err != nil {
			return nil, err
		}
		var summary model.BlockSummary
		if summary.Height, err = obj.Uint("height"); err != nil {
			return nil, err
		}
		if summary.CreatedAt, err = obj.Time("created_at"); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}
