package http

import (
	"io"
	"strconv"

	"github.com/httpool/httpool/http/mime"
	"github.com/httpool/httpool/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Response is a builder for the response head and body. It intentionally
// carries no Date/Server/Connection knowledge: those are shared session
// headers, constructed in one place when the response is serialized.
type Response struct {
	code        status.Code
	contentType mime.MIME
	body        []byte
	// attachment is the filename advertised via Content-Disposition.
	// Empty means the body is served inline.
	attachment string
	// stream, if set, is transferred after the head instead of body.
	// streamSize must hold its exact length for Content-Length.
	stream     io.ReadCloser
	streamSize int64
}

func NewResponse() *Response {
	return &Response{
		code:        status.OK,
		contentType: mime.HTML,
	}
}

func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

func (r *Response) ContentType(value mime.MIME) *Response {
	r.contentType = value
	return r
}

func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response body to the passed slice without copying.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// TryJSON serializes the model into the response body and sets the JSON
// content type.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.body = r.body[:0]
	stream := json.ConfigDefault.BorrowStream(writerAdapter{r})
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// Attachment marks the body or stream as a download with the given filename.
func (r *Response) Attachment(filename string) *Response {
	r.attachment = filename
	return r
}

// Stream replaces the in-memory body with a reader of a known size. The
// serializer closes it after the transfer.
func (r *Response) Stream(rc io.ReadCloser, size int64) *Response {
	r.stream = rc
	r.streamSize = size
	return r
}

func (r *Response) StatusCode() status.Code   { return r.code }
func (r *Response) ContentTypeValue() string  { return r.contentType }
func (r *Response) Body() []byte              { return r.body }
func (r *Response) AttachmentName() string    { return r.attachment }
func (r *Response) BodyStream() io.ReadCloser { return r.stream }

// ContentLength is the number of body bytes the head must declare.
func (r *Response) ContentLength() int64 {
	if r.stream != nil {
		return r.streamSize
	}

	return int64(len(r.body))
}

type writerAdapter struct {
	r *Response
}

func (w writerAdapter) Write(b []byte) (int, error) {
	w.r.body = append(w.r.body, b...)
	return len(b), nil
}

// Error builds a plain-text response for a failure. The body format is part
// of the wire contract: "Error <code>: <message>\n". Errors from outside the
// status taxonomy are answered as 500.
func Error(err error) *Response {
	code := status.InternalServerError
	message := string(status.Text(code))

	if httpErr, ok := err.(status.HTTPError); ok {
		code = httpErr.Code
		message = httpErr.Message
	}

	return NewResponse().
		Code(code).
		ContentType(mime.Plain).
		String("Error " + strconv.Itoa(int(code)) + ": " + message + "\n")
}
