package shape

import (
	"fmt"

	"explorerScope/internal/model"
)

// TransactionRow decodes a transaction with its events grouped by type.
// Scalar fields may be null; the events array may not.
func TransactionRow(body []byte) (model.TransactionRow, error) {
	root, err := parseRoot(body, false)
	if err != nil {
		return model.TransactionRow{}, err
	}
	obj := object{res: root}

	var row model.TransactionRow
	if row.TxHash, err = obj.NullableString("tx_hash"); err != nil {
		return model.TransactionRow{}, err
	}
	if row.Height, err = obj.NullableUint("height"); err != nil {
		return model.TransactionRow{}, err
	}
	if row.CreatedAt, err = obj.NullableTime("created_at"); err != nil {
		return model.TransactionRow{}, err
	}
	if row.Events, err = events(obj, "events"); err != nil {
		return model.TransactionRow{}, err
	}
	return row, nil
}

func events(obj object, key string) ([]model.Event, error) {
	items, err := obj.Array(key)
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(items))
	for i, item := range items {
		evt, err := newObject(item, elementPath(obj.name(key), i))
		if err != nil {
			return nil, err
		}
		typ, err := evt.String("type")
		if err != nil {
			return nil, err
		}
		attrs, err := evt.Array("attributes")
		if err != nil {
			return nil, err
		}
		event := model.Event{Type: typ, Attributes: make([]model.Attribute, 0, len(attrs))}
		for j, raw := range attrs {
			attr, err := newObject(raw, fmt.Sprintf("%s[%d]", evt.name("attributes"), j))
			if err != nil {
				return nil, err
			}
			var a model.Attribute
			if a.Key, err = attr.String("key"); err != nil {
				return nil, err
			}
			if a.Value, err = attr.NullableString("value"); err != nil {
				return nil, err
			}
			event.Attributes = append(event.Attributes, a)
		}
		out = append(out, event)
	}
	return out, nil
}
