// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// # Content Export

const (
	// ExportMediaType is the media type of every exported document.
	ExportMediaType = "text/html; charset=utf-8"

	// ExportExtension is appended to the title to form the filename.
	ExportExtension = ".html"
)

// Export is a story's content packaged as a downloadable document.
type Export struct {
	// Filename is "<title>.html" built from the raw title. It is NOT safe for
	// headers or file systems until sanitized by the caller.
	Filename string

	MediaType string

	// Body is the stored content, byte for byte.
	Body []byte

	// Checksum is the hex BLAKE2b-256 digest of Body.
	Checksum string
}

// ExportContent packages story for download. No size limit applies here.
func ExportContent(story *Story) Export {
	body := []byte(story.Content)
	sum := blake2b.Sum256(body)

	return Export{
		Filename:  story.Title + ExportExtension,
		MediaType: ExportMediaType,
		Body:      body,
		Checksum:  hex.EncodeToString(sum[:]),
	}
}
