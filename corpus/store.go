package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/conceptforge/exemplar/core"
)

// corpusFile is the on-disk corpus schema.
type corpusFile struct {
	Campaigns []corpusRecord `json:"campaigns"`
}

type corpusRecord struct {
	Campaign          string   `json:"campaign"`
	Brand             string   `json:"brand"`
	Year              int      `json:"year"`
	Headline          string   `json:"headline"`
	RhetoricalDevices []string `json:"rhetoricalDevices"`
	Rationale         string   `json:"rationale"`
	Outcome           string   `json:"outcome"`
	WhenToUse         string   `json:"whenToUse"`
	WhenNotToUse      string   `json:"whenNotToUse"`
	Award             string   `json:"award,omitempty"`
	ImpactMetric      string   `json:"impactMetric,omitempty"`
	Category          string   `json:"category,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	QualityScore      float64  `json:"qualityScore,omitempty"`
}

// Rejection records a corpus record that failed validation during load.
// Rejected records are skipped; the rest of the corpus still loads.
type Rejection struct {
	Index    int    // Position of the record in the corpus file
	Campaign string // Campaign name, if present
	Err      error
}

// Store is the immutable, in-memory corpus of campaign entries.
// Safe for concurrent reads after load; never mutated at runtime.
type Store struct {
	entries    []*core.CorpusEntry
	byID       map[core.ID]*core.CorpusEntry
	pos        map[core.ID]int // Insertion order, used for deterministic tie-breaks
	index      *invertedIndex
	rejections []Rejection
	logger     *slog.Logger
}

// Option configures a Store load.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Load reads the corpus file at path and builds the store and its indices.
// Returns ErrCorpusUnreadable if the file is missing and ErrCorpusMalformed
// if it is not valid JSON; individual invalid records are rejected with a
// logged warning instead of failing the load.
func Load(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorpusUnreadable, path, err)
	}
	defer f.Close()

	return LoadReader(f, opts...)
}

// LoadReader builds a store from corpus JSON read from r.
func LoadReader(r io.Reader, opts ...Option) (*Store, error) {
	s := &Store{
		byID:   make(map[core.ID]*core.CorpusEntry),
		pos:    make(map[core.ID]int),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var file corpusFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusMalformed, err)
	}

	for i, record := range file.Campaigns {
		entry := record.toEntry()
		if err := core.ValidateEntry(entry); err != nil {
			s.reject(i, record.Campaign, err)
			continue
		}
		if _, exists := s.byID[entry.Id]; exists {
			s.reject(i, record.Campaign, ErrDuplicateEntry)
			continue
		}

		s.pos[entry.Id] = len(s.entries)
		s.entries = append(s.entries, entry)
		s.byID[entry.Id] = entry
	}

	s.index = buildIndex(s.entries)
	s.logger.Info("corpus loaded",
		"entries", len(s.entries),
		"rejected", len(s.rejections),
		"words", len(s.index.word))

	return s, nil
}

func (s *Store) reject(index int, campaign string, err error) {
	s.rejections = append(s.rejections, Rejection{Index: index, Campaign: campaign, Err: err})
	s.logger.Warn("rejecting corpus record", "index", index, "campaign", campaign, "err", err)
}

// toEntry converts a raw record, applying defaults for the optional
// classification fields.
func (r corpusRecord) toEntry() *core.CorpusEntry {
	entry := &core.CorpusEntry{
		Campaign:          r.Campaign,
		Brand:             r.Brand,
		Year:              r.Year,
		Headline:          r.Headline,
		RhetoricalDevices: r.RhetoricalDevices,
		Rationale:         r.Rationale,
		Outcome:           r.Outcome,
		WhenToUse:         r.WhenToUse,
		WhenNotToUse:      r.WhenNotToUse,
		Award:             r.Award,
		ImpactMetric:      r.ImpactMetric,
		Category:          r.Category,
		Tags:              r.Tags,
		QualityScore:      r.QualityScore,
	}
	entry.Id = core.IDFromContent(r.Campaign + "-" + r.Brand)
	if entry.Category == "" && len(r.RhetoricalDevices) > 0 {
		entry.Category = r.RhetoricalDevices[0]
	}
	return entry
}

// Entries returns all corpus entries in insertion order.
// The returned slice must not be modified.
func (s *Store) Entries() []*core.CorpusEntry {
	return s.entries
}

// Get returns the entry with the given id, or nil if absent.
func (s *Store) Get(id core.ID) *core.CorpusEntry {
	return s.byID[id]
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Rejections returns the records rejected during load.
func (s *Store) Rejections() []Rejection {
	return s.rejections
}

// position returns the insertion index of an entry, for deterministic
// tie-breaking. Unknown ids sort last.
func (s *Store) position(id core.ID) int {
	if p, ok := s.pos[id]; ok {
		return p
	}
	return len(s.entries)
}
