// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportContent(t *testing.T) {
	export := ExportContent(&Story{Title: "My Story", Content: "<p>hi</p>"})

	assert.Equal(t, "My Story.html", export.Filename)
	assert.Equal(t, "text/html; charset=utf-8", export.MediaType)
	assert.Equal(t, []byte("<p>hi</p>"), export.Body)
	assert.Len(t, export.Checksum, 64)
}

func TestExportContent_ChecksumTracksContent(t *testing.T) {
	a := ExportContent(&Story{Title: "A", Content: "one"})
	b := ExportContent(&Story{Title: "B", Content: "one"})
	c := ExportContent(&Story{Title: "A", Content: "two"})

	assert.Equal(t, a.Checksum, b.Checksum)
	assert.NotEqual(t, a.Checksum, c.Checksum)
}

func TestExportContent_RawTitleAndEmptyContent(t *testing.T) {
	export := ExportContent(&Story{Title: `../"x"`, Content: ""})

	assert.Equal(t, `../"x".html`, export.Filename)
	assert.Empty(t, export.Body)
}

func TestAttachmentFor(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantASCII string
		wantName  string
	}{
		{"plain", "My Story", "my-story.html", "My Story.html"},
		{"unicode", "Nuit étoilée", "nuit-etoilee.html", "Nuit étoilée.html"},
		{"injection", "evil\"\r\nX-Hdr: 1", "evilx-hdr-1.html", "evilX-Hdr 1.html"},
		{"nothing_left", "../..", "story.html", "story.html"},
		{"non_latin", "物語", "story.html", "物語.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := attachmentFor(ExportContent(&Story{Title: tt.title, Content: "x"}))
			assert.Equal(t, tt.wantASCII, file.ASCIIName)
			assert.Equal(t, tt.wantName, file.Name)
			assert.Equal(t, ExportMediaType, file.MediaType)
			assert.NotEmpty(t, file.ETag)
		})
	}
}
