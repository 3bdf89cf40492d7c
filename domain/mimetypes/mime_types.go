package mimetypes

import (
	"mime"
	"slices"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextHTML  MIME = "text/html"

	ApplicationPDF  MIME = "application/pdf"
	ApplicationJSON MIME = "application/json"
	ApplicationZip  MIME = "application/zip"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWebP MIME = "image/webp"

	AudioMPEG MIME = "audio/mpeg"
	AudioWAV  MIME = "audio/wav"
	VideoMP4  MIME = "video/mp4"
)

// Uploadable lists what participants may share. Markup is excluded, uploads
// are served back from the same origin.
var Uploadable = []MIME{
	TextPlain,
	ApplicationPDF, ApplicationZip,
	ImagePNG, ImageJPEG, ImageGIF, ImageWebP,
	AudioMPEG, AudioWAV, VideoMP4,
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// IsUploadable strips parameters from a detected type and checks it against Uploadable.
func IsUploadable(detected string) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	if !slices.Contains(Uploadable, MIME(mt)) {
		return MIME(mt), false
	}
	return MIME(mt), true
}
