package flatindex

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SnapshotStore = (*Store)(nil)

const (
	indexFile   = "index.bin"
	passageFile = "passages.jsonl"

	// indexMagic identifies the vector file format version.
	indexMagic = "NIKAIX01"
)

// Store persists a snapshot as two files in one directory: a binary
// vector dump and a JSON-lines passage dump, one passage per line. The
// line at position i belongs to the vector at position i; that positional
// pairing is the whole join between the two files. Passages are JSON
// encoded per line so embedded newlines cannot shift the alignment.
type Store struct {
	dir string
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save atomically persists the snapshot pair. Both files are written to
// temporaries and renamed into place, vectors last, so a loader either
// sees the previous coherent pair or the new one.
func (s *Store) Save(_ context.Context, snapshot *domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("refusing to persist snapshot: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	passagePath := filepath.Join(s.dir, passageFile)
	indexPath := filepath.Join(s.dir, indexFile)

	if err := writeAtomic(passagePath, func(f *os.File) error {
		return writePassages(f, snapshot.Passages)
	}); err != nil {
		return fmt.Errorf("failed to write passage dump: %w", err)
	}

	if err := writeAtomic(indexPath, func(f *os.File) error {
		return writeVectors(f, snapshot)
	}); err != nil {
		return fmt.Errorf("failed to write vector index: %w", err)
	}

	return nil
}

// Load reads the persisted pair back. A missing pair is
// ErrIndexUnavailable; a count or dimension mismatch between the two
// files is ErrAlignment and the snapshot is refused.
func (s *Store) Load(_ context.Context) (*domain.Snapshot, error) {
	indexPath := filepath.Join(s.dir, indexFile)
	passagePath := filepath.Join(s.dir, passageFile)

	vf, err := os.Open(indexPath)
	if os.IsNotExist(err) {
		return nil, domain.ErrIndexUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}
	defer vf.Close()

	pf, err := os.Open(passagePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("vector index present without passage dump: %w", domain.ErrAlignment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open passage dump: %w", err)
	}
	defer pf.Close()

	dims, vectors, builtAt, err := readVectors(vf)
	if err != nil {
		return nil, err
	}

	passages, err := readPassages(pf)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		Dimensions: dims,
		Vectors:    vectors,
		Passages:   passages,
		BuiltAt:    builtAt,
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// writeAtomic writes via a temporary file in the target directory and
// renames it into place.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writePassages(f *os.File, passages []string) error {
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, p := range passages {
		// Encode emits one line per value.
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readPassages(f *os.File) ([]string, error) {
	var passages []string
	dec := json.NewDecoder(bufio.NewReader(f))
	for dec.More() {
		var p string
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode passage %d: %w", len(passages), err)
		}
		passages = append(passages, p)
	}
	return passages, nil
}

// Vector file layout: 8-byte magic, then uint32 dims, uint32 count,
// int64 unix-second build time, then count*dims little-endian float32s.
func writeVectors(f *os.File, snapshot *domain.Snapshot) error {
	w := bufio.NewWriter(f)

	if _, err := w.WriteString(indexMagic); err != nil {
		return err
	}
	header := []any{
		uint32(snapshot.Dimensions),
		uint32(len(snapshot.Vectors)),
		snapshot.BuiltAt.Unix(),
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	buf := make([]byte, 4)
	for _, vec := range snapshot.Vectors {
		for _, val := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(val))
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

func readVectors(f *os.File) (int, [][]float32, time.Time, error) {
	r := bufio.NewReader(f)

	magic := make([]byte, len(indexMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to read index header: %w", err)
	}
	if string(magic) != indexMagic {
		return 0, nil, time.Time{}, fmt.Errorf("unrecognised index format %q: %w", magic, domain.ErrInvalidInput)
	}

	var dims, count uint32
	var builtUnix int64
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to read index header: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to read index header: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &builtUnix); err != nil {
		return 0, nil, time.Time{}, fmt.Errorf("failed to read index header: %w", err)
	}

	vectors := make([][]float32, count)
	buf := make([]byte, 4)
	for i := range vectors {
		vec := make([]float32, dims)
		for j := range vec {
			if _, err := io.ReadFull(r, buf); err != nil {
				return 0, nil, time.Time{}, fmt.Errorf("truncated vector %d: %w", i, domain.ErrAlignment)
			}
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		vectors[i] = vec
	}

	return int(dims), vectors, time.Unix(builtUnix, 0), nil
}
