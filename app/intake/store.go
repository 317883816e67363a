package intake

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var (
	ErrPersist     = errors.New("intake: failed to persist submission")
	ErrStoreHeader = errors.New("intake: store header does not match the expected columns")
)

// CSVStore is the flat submissions file. Every append reads the whole file,
// adds the new records and rewrites it through a temp file and rename, so a
// failed write leaves the previous content intact. Writers inside one
// process are serialized; separate processes are not coordinated.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store at path. The file is created on first append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the store file location.
func (s *CSVStore) Path() string {
	return s.path
}

// Append adds records in order and returns the full store content as written.
func (s *CSVStore) Append(ctx context.Context, records []Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrPersist, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return nil, errors.Join(ErrPersist, err)
	}
	if len(rows) == 0 {
		rows = [][]string{slices.Clone(StoreHeader)}
	}
	for _, r := range records {
		rows = append(rows, r.Values())
	}

	content, err := encodeCSV(rows)
	if err != nil {
		return nil, errors.Join(ErrPersist, err)
	}
	if err := s.replace(content); err != nil {
		return nil, errors.Join(ErrPersist, err)
	}
	return content, nil
}

// Records returns every stored record, header excluded.
func (s *CSVStore) Records(context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Faculty: row[0],
			ContactRow: ContactRow{
				University:  row[1],
				ContactName: row[2],
				Designation: row[3],
				Email:       row[4],
			},
		})
	}
	return records, nil
}

// Check verifies that the store directory exists and is writable.
func (s *CSVStore) Check(context.Context) error {
	f, err := os.CreateTemp(filepath.Dir(s.path), ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("store directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// read returns all rows including the header. A missing or empty file yields nil.
func (s *CSVStore) read() ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(StoreHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	if !slices.Equal(trimBOM(rows[0]), StoreHeader) {
		return nil, ErrStoreHeader
	}
	rows[0] = slices.Clone(StoreHeader)
	return rows, nil
}

// replace writes content next to the store and renames it into place.
func (s *CSVStore) replace(content []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// encodeCSV renders rows with standard quoting.
func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// trimBOM strips a UTF-8 byte order mark that spreadsheet tools like to add.
func trimBOM(header []string) []string {
	if len(header) == 0 {
		return header
	}
	out := slices.Clone(header)
	out[0] = strings.TrimPrefix(out[0], "\uFEFF")
	return out
}
