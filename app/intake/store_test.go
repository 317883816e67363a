package intake

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func record(faculty, uni string) Record {
	return Record{Faculty: faculty, ContactRow: ContactRow{University: uni, ContactName: "C", Designation: "D", Email: "c@d.edu"}}
}

func TestCSVStore_SequentialAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	_, err := store.Append(ctx, []Record{record("Jane", "UT")})
	require.NoError(t, err)
	content, err := store.Append(ctx, []Record{record("Ann", "MIT")})
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, StoreHeader, rows[0])
	assert.Equal(t, "UT", rows[1][1])
	assert.Equal(t, "MIT", rows[2][1])

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), string(content))
	assert.True(t, strings.HasPrefix(string(content), "Faculty Name,University Name,Contact Name,Designation,Email\n"))
}

func TestCSVStore_ExistingRowsPreserved(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	existing := "Faculty Name,University Name,Contact Name,Designation,Email\n" +
		"Old,Uni A,X,Y,x@a.edu\n" +
		"Old,Uni B,X,Y,x@b.edu\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	store := NewCSVStore(path)
	_, err := store.Append(context.Background(), []Record{record("New", "Uni C")})
	require.NoError(t, err)

	records, err := store.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Uni A", records[0].University)
	assert.Equal(t, "Uni B", records[1].University)
	assert.Equal(t, "Uni C", records[2].University)
}

func TestCSVStore_EmptyFileTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewCSVStore(path).Append(context.Background(), []Record{record("Jane", "UT")})
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, StoreHeader, rows[0])
}

func TestCSVStore_QuotesSpecialCharacters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	rec := Record{Faculty: `Smith, "Jo"`, ContactRow: ContactRow{University: "Université de Montréal", ContactName: "C", Designation: "D", Email: "c@d.edu"}}

	content, err := NewCSVStore(path).Append(context.Background(), []Record{rec})
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Smith, ""Jo"""`)

	rows := readCSV(t, path)
	assert.Equal(t, `Smith, "Jo"`, rows[1][0])
	assert.Equal(t, "Université de Montréal", rows[1][1])
}

func TestCSVStore_HeaderMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	original := "a,b,c,d,e\n1,2,3,4,5\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	_, err := NewCSVStore(path).Append(context.Background(), []Record{record("Jane", "UT")})
	require.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, ErrStoreHeader)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestCSVStore_BOMHeaderAccepted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	require.NoError(t, os.WriteFile(path, []byte("\uFEFFFaculty Name,University Name,Contact Name,Designation,Email\nOld,U,X,Y,x@a.edu\n"), 0o644))

	_, err := NewCSVStore(path).Append(context.Background(), []Record{record("Jane", "UT")})
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, StoreHeader, rows[0])
}

func TestCSVStore_WriteFailureLeavesNoPartialState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// The store path is a directory, so reading it fails before anything is written.
	path := filepath.Join(dir, "submissions.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := NewCSVStore(path).Append(context.Background(), []Record{record("Jane", "UT")})
	require.ErrorIs(t, err, ErrPersist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCSVStore_CanceledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVStore(path).Append(ctx, []Record{record("Jane", "UT")})
	require.ErrorIs(t, err, ErrPersist)
	assert.NoFileExists(t, path)
}

func TestCSVStore_Check(t *testing.T) {
	t.Parallel()

	store := NewCSVStore(filepath.Join(t.TempDir(), "submissions.csv"))
	assert.NoError(t, store.Check(context.Background()))

	missing := NewCSVStore(filepath.Join(t.TempDir(), "nope", "submissions.csv"))
	assert.Error(t, missing.Check(context.Background()))
}
