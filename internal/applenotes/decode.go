// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package applenotes

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// DecodeError reports that a note's content blob could not be decompressed.
// The caller recovers by falling back to the note's snippet.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding content blob: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeBlob decompresses a gzipped content blob and returns its cleaned
// text. Invalid UTF-8 sequences are dropped rather than failing the record.
// Failures are reported as *DecodeError.
func DecodeBlob(data []byte) (string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", &DecodeError{Err: err}
	}

	return CleanText(strings.ToValidUTF8(string(raw), "")), nil
}

// CleanText keeps printable runes plus newline, carriage return, and tab.
// The blob payload embeds a structured format this tool does not parse, so
// this is a best-effort, lossy cleanup: binary artifacts are stripped, and
// stray printable fragments of the container format may leak through.
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
