// Package corpus provides corpus ingestion adapters.
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/nika-core/internal/core/ports/driven"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// Verify interface compliance
var _ driven.CorpusSource = (*Filesystem)(nil)

// Filesystem loads every .txt file under a directory tree as one raw
// document. Unreadable files are skipped and counted; the walk continues
// over the rest of the corpus.
type Filesystem struct {
	root   string
	logger *slog.Logger
}

// NewFilesystem creates a filesystem corpus source rooted at root.
func NewFilesystem(root string, logger *slog.Logger) *Filesystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filesystem{root: root, logger: logger}
}

// Load reads the corpus. Files are visited in lexical walk order so
// repeated rebuilds over an unchanged corpus produce identical snapshots.
func (f *Filesystem) Load(ctx context.Context) ([]domain.RawDocument, int, error) {
	info, err := os.Stat(f.root)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("corpus path %s is not a directory: %w", f.root, domain.ErrInvalidInput)
	}

	var docs []domain.RawDocument
	skipped := 0

	err = filepath.WalkDir(f.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			f.logger.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			skipped++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			f.logger.Warn("skipping unreadable file", "path", path, "error", err)
			skipped++
			return nil
		}

		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, domain.RawDocument{
			ID:      strings.TrimSuffix(rel, filepath.Ext(rel)),
			Path:    path,
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to walk corpus: %w", err)
	}

	return docs, skipped, nil
}
