// Package uploads persists JSON request bodies under the upload directory.
// Filenames are generated server-side, so concurrent uploads never collide
// and clients get no say in where their data lands.
package uploads

import (
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/httpool/httpool/http/mime"
	"github.com/httpool/httpool/http/status"
	"github.com/httpool/httpool/internal/timer"
	json "github.com/json-iterator/go"
)

// idChars keeps generated ids lowercase-hex, which reads well in paths and
// survives case-insensitive filesystems.
var idChars = []byte("0123456789abcdef")

const idLength = 8

// Result is what a successful store answers with; it is serialized verbatim
// into the 201 response body.
type Result struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filepath string `json:"filepath"`
}

type Sink struct {
	dir string
}

func NewSink(dir string) Sink {
	return Sink{dir: dir}
}

// Store validates and persists one upload. The content type must comply with
// application/json (status.ErrUnsupportedMediaType otherwise), and the body
// must be a well-formed JSON document (status.ErrBadJSON). The stored file is
// pretty-printed, decoupling what is kept on disk from how the client chose
// to format it.
func (s Sink) Store(contentType string, body []byte) (Result, error) {
	if !mime.Complies(mime.JSON, contentType) {
		return Result{}, status.ErrUnsupportedMediaType
	}

	var document any
	iterator := json.ConfigDefault.BorrowIterator(body)
	iterator.ReadVal(&document)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)
	if err != nil || document == nil {
		return Result{}, status.ErrBadJSON
	}

	pretty, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		return Result{}, status.ErrInternalServerError
	}

	name := filename()
	if err = os.WriteFile(filepath.Join(s.dir, name), pretty, 0o644); err != nil {
		return Result{}, status.ErrInternalServerError
	}

	return Result{
		Status:   "success",
		Message:  "File created successfully",
		Filepath: "/uploads/" + name,
	}, nil
}

func filename() string {
	stamp := timer.Now().Format("20060102_150405")
	return "upload_" + stamp + "_" + uniuri.NewLenChars(idLength, idChars) + ".json"
}
