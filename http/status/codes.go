package status

type (
	Code   uint16
	Status string
)

// The server speaks a restricted subset of HTTP, so only the codes it may ever
// put on the wire are enumerated here. Values are as registered with IANA.
const (
	OK      Code = 200
	Created Code = 201

	BadRequest            Code = 400
	Forbidden             Code = 403
	NotFound              Code = 404
	MethodNotAllowed      Code = 405
	RequestTimeout        Code = 408
	RequestEntityTooLarge Code = 413
	UnsupportedMediaType  Code = 415
	TooManyRequests       Code = 429

	InternalServerError Code = 500
	NotImplemented      Code = 501
	ServiceUnavailable  Code = 503
)

// Text returns the canonical reason phrase for the code, or "Unknown Status Code"
// for codes outside the server's vocabulary.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case UnsupportedMediaType:
		return "Unsupported Media Type"
	case TooManyRequests:
		return "Too Many Requests"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case ServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Unknown Status Code"
	}
}
