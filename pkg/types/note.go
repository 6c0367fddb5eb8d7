// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared record and configuration structures
// passed between the migration stages.
package types

// UntitledPlaceholder is substituted for notes whose title column is empty.
const UntitledPlaceholder = "Untitled"

// Note is the portable representation of one source note. Records are
// built in bulk by the extractor and are read-only afterwards: the backup
// writer serializes them and the uploader creates one remote note per
// record.
type Note struct {
	// Title is the note title, never empty (placeholder substituted).
	Title string `json:"title" yaml:"title"`

	// Content is the decoded note body. Empty when the source had neither
	// a content blob nor a snippet.
	Content string `json:"content" yaml:"content"`

	// Created is the raw creation timestamp from the source store,
	// passed through unaltered. Nil when the source column is NULL.
	Created *float64 `json:"created" yaml:"created"`

	// Modified is the raw modification timestamp from the source store,
	// passed through unaltered. Nil when the source column is NULL.
	Modified *float64 `json:"modified" yaml:"modified"`
}
