// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"fmt"
	"io"

	"github.com/pdiddy/notes-migrate/pkg/types"
)

// UploadResult holds the outcome of an upload run.
type UploadResult struct {
	Succeeded int
	Failed    int
}

// Total returns the number of notes attempted.
func (r UploadResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any notes failed to upload.
func (r UploadResult) HasFailures() bool {
	return r.Failed > 0
}

// UploadAll creates one remote note per record, printing per-item progress
// to w. Every record is attempted: a failed create is logged with the
// note's title, counted, and the loop continues. After the loop a single
// Sync flushes the service; its failure is a warning only and does not
// change the tally.
func UploadAll(client *Client, notes []types.Note, w io.Writer) UploadResult {
	fmt.Fprintf(w, "\nUploading %d notes to Google Keep...\n", len(notes))

	var result UploadResult
	for i, note := range notes {
		if err := client.CreateNote(note.Title, note.Content); err != nil {
			fmt.Fprintf(w, "[%d/%d] Failed to upload '%s': %v\n", i+1, len(notes), note.Title, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "[%d/%d] Uploaded: %s\n", i+1, len(notes), truncateTitle(note.Title, 50))
		result.Succeeded++
	}

	if err := client.Sync(); err != nil {
		fmt.Fprintf(w, "\nWarning: sync error: %v\n", err)
	} else {
		fmt.Fprintln(w, "\nSync completed!")
	}

	fmt.Fprintf(w, "\nResults: %d succeeded, %d failed\n", result.Succeeded, result.Failed)
	return result
}

// truncateTitle limits progress output to max runes.
func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
