package method

// Method is a closed variant: the server serves GET and POST, and everything
// else takes the exhaustive 405 path. Keeping the enum closed makes that path
// impossible to miss in a switch.
type Method uint8

const (
	Unknown Method = iota
	GET
	POST
)

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	default:
		return ""
	}
}

func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "POST":
		return POST
	default:
		return Unknown
	}
}
