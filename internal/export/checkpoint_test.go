package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "checkpoint.json")
	store := NewCheckpointStore(path, true)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("expected no checkpoint, got ok=%v err=%v", ok, err)
	}

	if err := store.Save(100, 1234); err != nil {
		t.Fatalf("save: %v", err)
	}
	cp, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if cp.FromHeight != 100 || cp.LastExportedHeight != 1234 || cp.UpdatedAt == "" {
		t.Fatalf("unexpected checkpoint: %+v", cp)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err=%v", err)
	}
}

func TestCheckpointDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	store := NewCheckpointStore(path, false)

	if err := store.Save(1, 10); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("disabled store should not write, stat err=%v", err)
	}
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("disabled store should not load, ok=%v err=%v", ok, err)
	}
}

func TestCheckpointResumesFrom(t *testing.T) {
	cp := Checkpoint{FromHeight: 10, LastExportedHeight: 20}
	cases := []struct {
		from uint64
		want bool
	}{
		{from: 10, want: true},
		{from: 1, want: false},
		{from: 15, want: false},
		{from: 30, want: false},
	}
	for _, tc := range cases {
		if got := cp.ResumesFrom(tc.from); got != tc.want {
			t.Fatalf("ResumesFrom(%d) = %v, want %v", tc.from, got, tc.want)
		}
	}
	if (Checkpoint{FromHeight: 10, LastExportedHeight: 9}).ResumesFrom(10) {
		t.Fatalf("checkpoint before the start height should not resume")
	}
}

func TestCheckpointCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := NewCheckpointStore(path, true).Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
