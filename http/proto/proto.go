package proto

type Proto uint8

const (
	Unknown Proto = iota
	HTTP10
	HTTP11
)

func (p Proto) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return ""
	}
}

// FromString recognizes the two protocol versions the server actually
// distinguishes. Anything else, HTTP/2 included, collapses into Unknown:
// such requests are answered, but their connections are never kept alive.
func FromString(raw string) Proto {
	switch raw {
	case "HTTP/1.0":
		return HTTP10
	case "HTTP/1.1":
		return HTTP11
	default:
		return Unknown
	}
}
