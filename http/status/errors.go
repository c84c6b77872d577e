package status

// HTTPError carries the wire status code alongside the message, so failures
// detected deep inside parsing or validation can be answered at the session
// boundary without any extra mapping tables.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrMalformedRequestLine = NewError(BadRequest, "bad request: invalid status line")
	ErrMissingHost          = NewError(BadRequest, "bad request: missing Host header")
	ErrBadJSON              = NewError(BadRequest, "bad request: invalid JSON in body")
	ErrRequestTooLarge      = NewError(BadRequest, "bad request: request exceeds size limit")
	ErrConnectionLimit      = NewError(BadRequest, "bad request")

	ErrHostMismatch  = NewError(Forbidden, "forbidden: Host header mismatch")
	ErrPathTraversal = NewError(Forbidden, "forbidden: path traversal detected")
	ErrOutsideRoot   = NewError(Forbidden, "forbidden: path outside resource directory")

	ErrNotFound             = NewError(NotFound, "not found")
	ErrMethodNotAllowed     = NewError(MethodNotAllowed, "method not allowed")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")

	ErrInternalServerError = NewError(InternalServerError, "internal server error")
	ErrServiceUnavailable  = NewError(ServiceUnavailable, "service unavailable")
)
