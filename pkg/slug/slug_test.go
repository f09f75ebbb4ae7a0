// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Story", "my-story"},
		{"Crème Brûlée Tales!", "creme-brulee-tales"},
		{"  --Hello,   World--  ", "hello-world"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.in))
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "My Story.html", "My Story.html"},
		{"unicode_kept", "Nuit étoilée.html", "Nuit étoilée.html"},
		{"header_injection", "a\"\r\nSet-Cookie: x.html", "aSet-Cookie x.html"},
		{"path_traversal", "../../etc/passwd", "etcpasswd"},
		{"windows_separators", `..\boot.ini`, "boot.ini"},
		{"bidi_override", "evil\u202elmth.exe", "evillmth.exe"},
		{"invalid_utf8", "bad\xffname", "badname"},
		{"only_dots", "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}
