package headers

import "strings"

// Headers is a case-insensitive header storage. Keys are lower-cased on
// insertion, so lookups cost a single map access for the common case of
// already-lowercase keys. Insertion order is not preserved: the server
// never needs it.
type Headers struct {
	m map[string]string
}

func New() Headers {
	return Headers{m: make(map[string]string)}
}

// Set stores the value under the lower-cased key, overwriting any previous
// value. Repeated headers are not concatenated: the last one wins.
func (h Headers) Set(key, value string) {
	h.m[strings.ToLower(key)] = value
}

// Value returns the value for the key or an empty string.
func (h Headers) Value(key string) string {
	return h.m[strings.ToLower(key)]
}

// Lookup is Value with an explicit presence flag, for headers whose absence
// matters (Host).
func (h Headers) Lookup(key string) (string, bool) {
	value, found := h.m[strings.ToLower(key)]
	return value, found
}

func (h Headers) Has(key string) bool {
	_, found := h.m[strings.ToLower(key)]
	return found
}

func (h Headers) Len() int {
	return len(h.m)
}
