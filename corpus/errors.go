package corpus

import "errors"

var (
	// ErrCorpusUnreadable indicates the corpus file is missing or cannot be read.
	ErrCorpusUnreadable = errors.New("corpus file unreadable")

	// ErrCorpusMalformed indicates the corpus file is not valid JSON.
	ErrCorpusMalformed = errors.New("corpus file malformed")

	// ErrDuplicateEntry indicates two records resolved to the same entry id.
	ErrDuplicateEntry = errors.New("duplicate corpus entry")
)
