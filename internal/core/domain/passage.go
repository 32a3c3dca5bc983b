package domain

import "time"

// RawDocument is one ingested corpus record before normalisation.
// Produced once by a CorpusSource and never mutated afterwards.
type RawDocument struct {
	ID      string `json:"id"`
	Path    string `json:"path"` // source path or URL
	Content string `json:"content"`
}

// Snapshot pairs every embedding vector with the passage it was computed
// from, by array position. The positional join is the only join there is:
// there are no per-passage IDs, so both halves must always be produced from
// the same in-memory passage list in one pass and persisted together.
type Snapshot struct {
	Dimensions int         `json:"dimensions"`
	Vectors    [][]float32 `json:"vectors"`
	Passages   []string    `json:"passages"`
	BuiltAt    time.Time   `json:"built_at"`
}

// Validate checks the alignment invariant and the vector dimensions.
func (s *Snapshot) Validate() error {
	if len(s.Vectors) != len(s.Passages) {
		return ErrAlignment
	}
	for _, v := range s.Vectors {
		if len(v) != s.Dimensions {
			return ErrAlignment
		}
	}
	return nil
}

// Empty reports whether the snapshot has nothing to search.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Passages) == 0
}

// RebuildResult summarises one full corpus rebuild.
type RebuildResult struct {
	Documents int           `json:"documents"`
	Skipped   int           `json:"skipped"` // malformed/unreadable records
	Passages  int           `json:"passages"`
	Took      time.Duration `json:"took"`
}
