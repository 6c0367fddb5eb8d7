// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package applenotes extracts note records from an Apple Notes SQLite store.
//
// The store is opened read-only and queried with a single fixed statement
// joining the syncing-object metadata table to the content-blob table. Blobs
// are gzip-compressed; their decompressed payload is an internal structured
// format this package does not parse, so content goes through a lossy
// printable-character cleanup instead.
package applenotes

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notes-migrate/pkg/types"
)

// notesQuery joins note metadata to the gzipped content blob. Deleted notes
// and rows without a title are excluded; folders, tags, and pinned status
// are not filtered on.
const notesQuery = `
SELECT
    ZICCLOUDSYNCINGOBJECT.ZTITLE1 as title,
    ZICCLOUDSYNCINGOBJECT.ZSNIPPET as snippet,
    ZICNOTEDATA.ZDATA as data,
    ZICCLOUDSYNCINGOBJECT.ZCREATIONDATE1 as created,
    ZICCLOUDSYNCINGOBJECT.ZMODIFICATIONDATE1 as modified
FROM ZICCLOUDSYNCINGOBJECT
LEFT JOIN ZICNOTEDATA ON ZICCLOUDSYNCINGOBJECT.Z_PK = ZICNOTEDATA.ZNOTE
WHERE ZICCLOUDSYNCINGOBJECT.ZTITLE1 IS NOT NULL
AND ZICCLOUDSYNCINGOBJECT.ZMARKEDFORDELETION = 0
`

// SourceError reports that the source store could not be opened at all,
// as opposed to opening fine and containing no notes.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("Apple Notes database not found at %s", e.Path)
}

func (e *SourceError) Unwrap() error { return e.Err }

// DefaultDBPath returns the standard Apple Notes store location under the
// user's home directory.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home,
		"Library", "Group Containers", "group.com.apple.notes", "NoteStore.sqlite"), nil
}

// Extract opens the store at dbPath read-only and returns one record per
// non-deleted, titled note. Per-row decode failures degrade the record to
// its snippet and print a warning to w; they never abort the run. A missing
// database file is a *SourceError.
func Extract(dbPath string, w io.Writer) ([]types.Note, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceError{Path: dbPath, Err: err}
		}
		return nil, fmt.Errorf("checking database path %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(notesQuery)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []types.Note
	for rows.Next() {
		var (
			title             string
			snippet           sql.NullString
			data              []byte
			created, modified sql.NullFloat64
		)
		if err := rows.Scan(&title, &snippet, &data, &created, &modified); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}

		content := snippet.String
		if len(data) > 0 {
			decoded, err := DecodeBlob(data)
			if err != nil {
				fmt.Fprintf(w, "Warning: could not decompress note '%s': %v\n", title, err)
			} else {
				content = decoded
			}
		}

		if title == "" {
			title = types.UntitledPlaceholder
		}
		notes = append(notes, types.Note{
			Title:    title,
			Content:  content,
			Created:  nullFloat(created),
			Modified: nullFloat(modified),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading note rows: %w", err)
	}

	fmt.Fprintf(w, "Extracted %d notes from Apple Notes\n", len(notes))
	return notes, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
