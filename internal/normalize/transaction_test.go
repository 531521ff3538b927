package normalize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"explorerScope/internal/model"
)

func uintPtr(v uint64) *uint64 { return &v }

func txRow() model.TransactionRow {
	return model.TransactionRow{
		TxHash:    strPtr("ABCD"),
		Height:    uintPtr(7),
		CreatedAt: timePtr(blockTime),
		Events: []model.Event{
			{Type: "tx", Attributes: []model.Attribute{{Key: "hash", Value: strPtr("ABCD")}}},
			{Type: "action_output", Attributes: []model.Attribute{{Key: "note", Value: strPtr("n1")}}},
			{Type: "action_spend", Attributes: []model.Attribute{{Key: "nullifier", Value: nil}}},
			{Type: "action_output", Attributes: []model.Attribute{{Key: "note", Value: strPtr("n2")}}},
		},
	}
}

func TestTransactionRowMergesTypes(t *testing.T) {
	got, err := TransactionRow(txRow(), Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := model.TransactionRecord{
		TxHash:    "ABCD",
		Height:    7,
		CreatedAt: blockTime,
		Events: []model.Event{
			{Type: "tx", Attributes: []model.Attribute{{Key: "hash", Value: strPtr("ABCD")}}},
			{Type: "action_output", Attributes: []model.Attribute{
				{Key: "note", Value: strPtr("n1")},
				{Key: "note", Value: strPtr("n2")},
			}},
			{Type: "action_spend", Attributes: []model.Attribute{{Key: "nullifier"}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transaction mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactionRowExcludesTx(t *testing.T) {
	got, err := TransactionRow(txRow(), Options{ExcludeTypes: []string{"tx"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if types := eventTypes(got.Events); !cmp.Equal(types, []string{"action_output", "action_spend"}) {
		t.Fatalf("unexpected types: %v", types)
	}
}

func TestTransactionRowDoesNotAliasInput(t *testing.T) {
	row := txRow()
	got, err := TransactionRow(row, Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(row.Events[1].Attributes) != 1 {
		t.Fatalf("input mutated: %+v", row.Events[1])
	}
	if len(got.Events[1].Attributes) != 2 {
		t.Fatalf("output not merged: %+v", got.Events[1])
	}
}

func TestTransactionRowRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*model.TransactionRow)
	}{
		{field: "tx_hash", mutate: func(r *model.TransactionRow) { r.TxHash = nil }},
		{field: "tx_hash", mutate: func(r *model.TransactionRow) { r.TxHash = strPtr(" ") }},
		{field: "height", mutate: func(r *model.TransactionRow) { r.Height = nil }},
		{field: "created_at", mutate: func(r *model.TransactionRow) { r.CreatedAt = nil }},
	}
	for _, tc := range cases {
		row := txRow()
		tc.mutate(&row)
		_, err := TransactionRow(row, Options{})
		var missing *MissingFieldError
		if !errors.As(err, &missing) || missing.Field != tc.field {
			t.Fatalf("expected MissingField(%s), got %v", tc.field, err)
		}
		if !errors.Is(err, ErrStructuralViolation) {
			t.Fatalf("expected structural violation, got %v", err)
		}
	}
}
