// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backup writes a durable snapshot of extracted notes before any
// network action, and reads such snapshots back for replayed uploads.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes-migrate/pkg/types"
)

const filePrefix = "apple_notes_backup_"

// FileName returns the backup file name for the given local timestamp,
// e.g. apple_notes_backup_20260825_153004.json.
func FileName(format types.BackupFormat, now time.Time) string {
	return filePrefix + now.Format("20060102_150405") + "." + string(format)
}

// Write serializes notes into dir under a timestamped name and returns the
// written path. JSON output is indented and keeps non-ASCII text verbatim
// (no HTML escaping). Any failure here aborts the run: the backup file is
// the only durability checkpoint before uploads begin, so an existing file
// with the same name is an error rather than an overwrite.
func Write(notes []types.Note, dir string, format types.BackupFormat) (string, error) {
	path := filepath.Join(dir, FileName(format, time.Now()))

	data, err := Marshal(notes, format)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("writing backup file %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing backup file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing backup file %s: %w", path, err)
	}
	return path, nil
}

// Marshal encodes notes in the given backup format.
func Marshal(notes []types.Note, format types.BackupFormat) ([]byte, error) {
	switch format {
	case types.BackupJSON:
		var b strings.Builder
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(notes); err != nil {
			return nil, fmt.Errorf("marshaling backup: %w", err)
		}
		return []byte(b.String()), nil
	case types.BackupYAML:
		data, err := yaml.Marshal(notes)
		if err != nil {
			return nil, fmt.Errorf("marshaling backup: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown backup format %q", format)
	}
}

// Read parses a backup file previously produced by Write. The format is
// detected from the file extension.
func Read(path string) ([]types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}

	var notes []types.Note
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &notes); err != nil {
			return nil, fmt.Errorf("parsing backup file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &notes); err != nil {
			return nil, fmt.Errorf("parsing backup file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unrecognized backup extension %q", ext)
	}
	return notes, nil
}
