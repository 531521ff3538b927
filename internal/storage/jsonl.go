package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"explorerScope/internal/model"
)

// JsonlStorage appends normalized blocks to a JSONL file, one block per line.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// Reset truncates the output file, creating it when missing.
func (s *JsonlStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open(os.O_TRUNC)
	if err != nil {
		return err
	}
	return file.Close()
}

// PutBlockBatch appends blocks in the order given.
func (s *JsonlStorage) PutBlockBatch(blocks []model.BlockRecord) error {
	if len(blocks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open(os.O_APPEND)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, block := range blocks {
		line, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("marshal block %d: %w", block.Height, err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write block %d: %w", block.Height, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

func (s *JsonlStorage) open(mode int) (*os.File, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|mode, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return file, nil
}
