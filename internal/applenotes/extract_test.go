// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package applenotes

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noteRow describes one fixture row across the two source tables. Nil
// pointer fields become NULL columns; data nil means no blob row at all.
type noteRow struct {
	pk       int
	title    *string
	snippet  *string
	deleted  int
	created  *float64
	modified *float64
	data     []byte
}

func strp(s string) *string { return &s }

func floatp(f float64) *float64 { return &f }

// createTestDB builds a minimal NoteStore.sqlite with the two tables the
// extraction query touches.
func createTestDB(t *testing.T, rows []noteRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "NoteStore.sqlite")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ZICCLOUDSYNCINGOBJECT (
		Z_PK INTEGER PRIMARY KEY,
		ZTITLE1 TEXT,
		ZSNIPPET TEXT,
		ZCREATIONDATE1 REAL,
		ZMODIFICATIONDATE1 REAL,
		ZMARKEDFORDELETION INTEGER
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE ZICNOTEDATA (
		Z_PK INTEGER PRIMARY KEY,
		ZNOTE INTEGER,
		ZDATA BLOB
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(
			`INSERT INTO ZICCLOUDSYNCINGOBJECT
			 (Z_PK, ZTITLE1, ZSNIPPET, ZCREATIONDATE1, ZMODIFICATIONDATE1, ZMARKEDFORDELETION)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.pk, r.title, r.snippet, r.created, r.modified, r.deleted)
		require.NoError(t, err)
		if r.data != nil {
			_, err = db.Exec(`INSERT INTO ZICNOTEDATA (ZNOTE, ZDATA) VALUES (?, ?)`, r.pk, r.data)
			require.NoError(t, err)
		}
	}
	return path
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractFilters(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp("Groceries"), deleted: 0, data: gzipBytes(t, "milk\neggs")},
		{pk: 2, title: strp("Deleted note"), deleted: 1, data: gzipBytes(t, "gone")},
		{pk: 3, title: nil, deleted: 0, snippet: strp("no title")},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "milk\neggs", notes[0].Content)
	assert.Contains(t, out.String(), "Extracted 1 notes from Apple Notes")
}

func TestExtractSnippetFallback(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp("Snippet only"), snippet: strp("short preview")},
		{pk: 2, title: strp("Nothing at all")},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "short preview", notes[0].Content)
	assert.Equal(t, "", notes[1].Content)
}

func TestExtractCorruptBlobDegrades(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp("Broken"), snippet: strp("fallback text"), data: []byte("not gzip at all")},
		{pk: 2, title: strp("Fine"), data: gzipBytes(t, "still extracted")},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "fallback text", notes[0].Content)
	assert.Equal(t, "still extracted", notes[1].Content)
	assert.Contains(t, out.String(), "Warning: could not decompress note 'Broken'")
}

func TestExtractCorruptBlobWithoutSnippet(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp("Broken"), data: []byte{0x01, 0x02}},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "", notes[0].Content)
}

func TestExtractUntitledPlaceholder(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp(""), snippet: strp("body")},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Untitled", notes[0].Title)
}

func TestExtractTimestampsPassThrough(t *testing.T) {
	path := createTestDB(t, []noteRow{
		{pk: 1, title: strp("Stamped"), created: floatp(745436122.5), modified: floatp(745437000.25)},
		{pk: 2, title: strp("Unstamped")},
	})

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	require.NotNil(t, notes[0].Created)
	require.NotNil(t, notes[0].Modified)
	assert.Equal(t, 745436122.5, *notes[0].Created)
	assert.Equal(t, 745437000.25, *notes[0].Modified)
	assert.Nil(t, notes[1].Created)
	assert.Nil(t, notes[1].Modified)
}

func TestExtractMissingDatabase(t *testing.T) {
	var out bytes.Buffer
	notes, err := Extract(filepath.Join(t.TempDir(), "nope.sqlite"), &out)

	require.Error(t, err)
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Contains(t, srcErr.Error(), "Apple Notes database not found at")
	assert.Nil(t, notes)
}

func TestExtractEmptyDatabase(t *testing.T) {
	path := createTestDB(t, nil)

	var out bytes.Buffer
	notes, err := Extract(path, &out)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Contains(t, out.String(), "Extracted 0 notes")
}
