package mimetypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected MIME
		want     bool
	}{
		{"Plain text with charset", "text/plain; charset=utf-8", TextPlain, true},
		{"HTML text", "text/html; charset=utf-8", TextHTML, true},
		{"JSON with charset", "application/json; charset=utf-8", ApplicationJSON, true},
		{"PDF", "application/pdf", ApplicationPDF, true},
		{"PNG", "image/png", ImagePNG, true},
		{"Mismatch", "text/plain; charset=utf-8", ApplicationJSON, false},
		{"Unknown type", "application/octet-stream", TextPlain, false},
		{"Invalid MIME", "not a mime", TextPlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Matches(tt.detected, tt.expected)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestIsUploadable(t *testing.T) {
	tests := []struct {
		detected string
		want     MIME
		ok       bool
	}{
		{"image/png", ImagePNG, true},
		{"text/plain; charset=utf-8", TextPlain, true},
		{"audio/mpeg", AudioMPEG, true},
		{"text/html; charset=utf-8", TextHTML, false},
		{"application/octet-stream", MIME("application/octet-stream"), false},
		{"not a mime", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.detected, func(t *testing.T) {
			req := require.New(t)
			got, ok := IsUploadable(tt.detected)
			req.Equal(tt.ok, ok)
			req.Equal(tt.want, got)
		})
	}
}
