package mime

import "strings"

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	HTMLUTF8    MIME = "text/html; charset=utf-8"
	JSON        MIME = "application/json"
)

// Complies reports whether a Content-Type header value names the given MIME,
// ignoring any parameters (e.g. "application/json; charset=utf-8" complies
// with JSON). An empty value complies with nothing.
func Complies(mime MIME, with string) bool {
	if semicolon := strings.IndexByte(with, ';'); semicolon != -1 {
		with = with[:semicolon]
	}

	return strings.EqualFold(strings.TrimSpace(with), mime)
}

// ByExtension maps a file extension (without the dot, any case) onto the
// content type it is served with. The second value tells whether the file
// is transferred as an attachment download. Extensions outside the table
// are unsupported media types.
func ByExtension(ext string) (mime MIME, attachment bool, ok bool) {
	switch strings.ToLower(ext) {
	case "html":
		return HTMLUTF8, false, true
	case "txt", "png", "jpg", "jpeg":
		return OctetStream, true, true
	default:
		return "", false, false
	}
}
