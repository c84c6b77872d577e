// Package statics resolves validated filesystem paths into servable files.
// It never sees a raw request path: callers must pass paths that already
// went through the security policy.
package statics

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/httpool/httpool/http/mime"
	"github.com/httpool/httpool/http/status"
)

// File describes a resolved static file. Stream is an open handle positioned
// at the start; the caller owns it and must close it after the transfer.
type File struct {
	Name       string
	MIME       mime.MIME
	Size       int64
	Attachment bool
	Stream     io.ReadCloser
}

type Resolver struct{}

func NewResolver() Resolver {
	return Resolver{}
}

// Resolve opens the file at the given safe path. Missing files and
// directories are reported as status.ErrNotFound, extensions outside the
// recognized set as status.ErrUnsupportedMediaType, and open failures on an
// otherwise valid file as status.ErrInternalServerError.
func (Resolver) Resolve(safePath string) (File, error) {
	info, err := os.Stat(safePath)
	if err != nil || info.IsDir() {
		return File{}, status.ErrNotFound
	}

	name := filepath.Base(safePath)
	contentType, attachment, ok := mime.ByExtension(strings.TrimPrefix(filepath.Ext(name), "."))
	if !ok {
		return File{}, status.ErrUnsupportedMediaType
	}

	stream, err := os.Open(safePath)
	if err != nil {
		return File{}, status.ErrInternalServerError
	}

	return File{
		Name:       name,
		MIME:       contentType,
		Size:       info.Size(),
		Attachment: attachment,
		Stream:     stream,
	}, nil
}
