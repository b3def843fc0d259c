package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/conceptforge/exemplar/core"
)

// fileRecord is the JSON shape of one persisted embedding.
type fileRecord struct {
	EntryId uint64    `json:"entryId"`
	Vector  []float32 `json:"vector"`
	Text    string    `json:"text"`
}

type fileSnapshot struct {
	Records []fileRecord `json:"records"`
}

// FileStore persists embedding records as a single JSON file.
// Saves write to a temp file in the same directory and rename into
// place, so readers never observe a partial snapshot.
type FileStore struct {
	path   string
	mu     sync.Mutex
	closed bool
	logger *slog.Logger
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithFileStoreLogger sets a custom logger. Default is slog.Default().
func WithFileStoreLogger(logger *slog.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewFileStore creates a store backed by the JSON file at path.
// The file does not need to exist yet.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the snapshot file. Missing or corrupt files yield an empty
// map; the cache recomputes what it needs.
func (s *FileStore) Load(ctx context.Context) (map[core.ID]*core.EmbeddingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	records := make(map[core.ID]*core.EmbeddingRecord)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("embedding snapshot unreadable, starting empty", "path", s.path, "err", err)
		}
		return records, nil
	}

	var snapshot fileSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("embedding snapshot corrupt, starting empty", "path", s.path, "err", err)
		return records, nil
	}

	for _, r := range snapshot.Records {
		id := core.ID(r.EntryId)
		records[id] = &core.EmbeddingRecord{
			EntryId: id,
			Vector:  r.Vector,
			Text:    r.Text,
		}
	}

	s.logger.Debug("loaded embedding snapshot", "path", s.path, "count", len(records))
	return records, nil
}

// Save writes a full snapshot atomically.
func (s *FileStore) Save(ctx context.Context, records map[core.ID]*core.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	snapshot := fileSnapshot{Records: make([]fileRecord, 0, len(records))}
	for _, record := range records {
		snapshot.Records = append(snapshot.Records, fileRecord{
			EntryId: uint64(record.EntryId),
			Vector:  record.Vector,
			Text:    record.Text,
		})
	}

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.logger.Debug("saved embedding snapshot", "path", s.path, "count", len(records))
	return nil
}

// Close marks the store closed. Further operations fail with
// ErrStorageClosed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
