package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"explorerScope/internal/model"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

var blockTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func markerRow() model.BlockRow {
	return model.BlockRow{
		CreatedAt: timePtr(blockTime),
		TxHashes:  []string{"h1"},
		Type:      "block",
		Key:       "height",
		Value:     strPtr("10"),
	}
}

func TestBlockRowsFoldsByType(t *testing.T) {
	rows := []model.BlockRow{
		markerRow(),
		{Type: "transfer", Key: "amount", Value: strPtr("5")},
		{Type: "transfer", Key: "to", Value: strPtr("addr")},
	}

	got, err := BlockRows(10, rows, Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := model.BlockRecord{
		Height:    10,
		CreatedAt: blockTime,
		TxHashes:  []string{"h1"},
		Events: []model.Event{
			{Type: "block", Attributes: []model.Attribute{{Key: "height", Value: strPtr("10")}}},
			{Type: "transfer", Attributes: []model.Attribute{
				{Key: "amount", Value: strPtr("5")},
				{Key: "to", Value: strPtr("addr")},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("block mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockRowsKeepsFirstSeenOrder(t *testing.T) {
	a := []model.BlockRow{
		{Type: "transfer", Key: "amount", Value: strPtr("5")},
		markerRow(),
		{Type: "mint", Key: "amount", Value: strPtr("1")},
		{Type: "transfer", Key: "to", Value: strPtr("addr")},
	}
	b := []model.BlockRow{
		{Type: "mint", Key: "amount", Value: strPtr("1")},
		{Type: "transfer", Key: "to", Value: strPtr("addr")},
		markerRow(),
		{Type: "transfer", Key: "amount", Value: strPtr("5")},
	}

	first, err := BlockRows(10, a, Options{})
	if err != nil {
		t.Fatalf("normalize a: %v", err)
	}
	second, err := BlockRows(10, b, Options{})
	if err != nil {
		t.Fatalf("normalize b: %v", err)
	}

	if got := eventTypes(first.Events); !cmp.Equal(got, []string{"transfer", "block", "mint"}) {
		t.Fatalf("order a = %v", got)
	}
	if got := eventTypes(second.Events); !cmp.Equal(got, []string{"mint", "transfer", "block"}) {
		t.Fatalf("order b = %v", got)
	}

	wantAttrs := []model.Attribute{{Key: "to", Value: strPtr("addr")}, {Key: "amount", Value: strPtr("5")}}
	if diff := cmp.Diff(wantAttrs, second.Events[1].Attributes); diff != "" {
		t.Fatalf("attribute order (-want +got):\n%s", diff)
	}
}

func TestBlockRowsMissingMarker(t *testing.T) {
	rows := []model.BlockRow{
		{Type: "transfer", Key: "amount", Value: strPtr("5")},
	}
	for _, input := range [][]model.BlockRow{rows, nil} {
		_, err := BlockRows(1, input, Options{})
		var missing *MissingMarkerError
		if !errors.As(err, &missing) || missing.Marker != "block" {
			t.Fatalf("expected MissingMarker(block), got %v", err)
		}
		if !errors.Is(err, ErrStructuralViolation) {
			t.Fatalf("expected structural violation, got %v", err)
		}
	}
}

func TestBlockRowsMissingCreatedAt(t *testing.T) {
	marker := markerRow()
	marker.CreatedAt = nil

	_, err := BlockRows(1, []model.BlockRow{marker}, Options{})
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "created_at" {
		t.Fatalf("expected MissingField(created_at), got %v", err)
	}
}

func TestBlockRowsUsesFirstMarker(t *testing.T) {
	second := markerRow()
	second.CreatedAt = nil
	second.Key = "other"

	got, err := BlockRows(1, []model.BlockRow{markerRow(), second}, Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got.Events) != 1 || len(got.Events[0].Attributes) != 2 {
		t.Fatalf("unexpected events: %+v", got.Events)
	}
}

func TestBlockRowsTxHashes(t *testing.T) {
	nullable := markerRow()
	nullable.TxHashes = nil
	nullable.TxHashesNull = true

	got, err := BlockRows(1, []model.BlockRow{nullable}, Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.TxHashes == nil || len(got.TxHashes) != 0 {
		t.Fatalf("expected empty tx hashes, got %#v", got.TxHashes)
	}

	absent := markerRow()
	absent.TxHashes = nil
	_, err = BlockRows(1, []model.BlockRow{absent}, Options{})
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "tx_hashes" {
		t.Fatalf("expected MissingField(tx_hashes), got %v", err)
	}
}

func TestBlockRowsExcludeTypes(t *testing.T) {
	rows := []model.BlockRow{
		markerRow(),
		{Type: "tx", Key: "hash", Value: strPtr("h1")},
		{Type: "transfer", Key: "amount", Value: strPtr("5")},
	}

	got, err := BlockRows(1, rows, Options{ExcludeTypes: []string{"tx", "block"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if types := eventTypes(got.Events); !cmp.Equal(types, []string{"transfer"}) {
		t.Fatalf("unexpected types: %v", types)
	}
	if !got.CreatedAt.Equal(blockTime) {
		t.Fatalf("marker metadata lost: %v", got.CreatedAt)
	}
}

func eventTypes(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, event := range events {
		out = append(out, event.Type)
	}
	return out
}
