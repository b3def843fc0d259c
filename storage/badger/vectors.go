package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/conceptforge/exemplar/core"
	"github.com/conceptforge/exemplar/storage"
)

// VectorStore implements storage.VectorStore on top of BadgerDB.
// Records are stored in MUS format, one key per corpus entry.
type VectorStore struct {
	backend *Backend
	logger  *slog.Logger
}

// NewVectorStore creates a vector store over an open backend.
// The store takes ownership of the backend; Close closes it.
func NewVectorStore(backend *Backend) (*VectorStore, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &VectorStore{
		backend: backend,
		logger:  slog.Default().With("component", "badger-vectors"),
	}, nil
}

var _ storage.VectorStore = (*VectorStore)(nil)

// Load reads every embedding record. Individual records that fail to
// deserialize are skipped with a warning, the rest still load.
func (s *VectorStore) Load(ctx context.Context) (map[core.ID]*core.EmbeddingRecord, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	records := make(map[core.ID]*core.EmbeddingRecord)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			err := item.Value(func(val []byte) error {
				record, err := storage.UnmarshalEmbeddingRecord(val)
				if err != nil {
					s.logger.Warn("skipping undecodable embedding record", "key", string(item.Key()), "err", err)
					return nil
				}
				records[record.EntryId] = record
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded embedding records", "count", len(records))
	return records, nil
}

// Save writes a full snapshot. Records absent from the snapshot are
// deleted so the store mirrors the cache exactly.
func (s *VectorStore) Save(ctx context.Context, records map[core.ID]*core.EmbeddingRecord) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	// Collect stale keys first so the write batch below stays simple.
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}

	batch := s.backend.db.NewWriteBatch()
	defer batch.Cancel()

	for id := range existing {
		if _, keep := records[id]; !keep {
			if err := batch.Delete(makeEmbeddingKey(id)); err != nil {
				return err
			}
		}
	}

	for id, record := range records {
		if err := batch.Set(makeEmbeddingKey(id), storage.MarshalEmbeddingRecord(record)); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		return err
	}

	s.logger.Debug("saved embedding records", "count", len(records))
	return nil
}

// Close closes the underlying backend.
func (s *VectorStore) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}
