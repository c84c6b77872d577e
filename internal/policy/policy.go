// Package policy gatekeeps every parsed request before it may touch the
// filesystem. The checks run in a fixed order and each failure short-circuits
// with its own status: the host is verified before anything about the path is
// even looked at, so foreign hosts learn nothing about path validation.
package policy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/httpool/httpool/http"
	"github.com/httpool/httpool/http/status"
	"github.com/httpool/httpool/internal/address"
)

const indexPage = "index.html"

type Policy struct {
	// expected is the exact "host:port" value the server was bound to.
	expected string
	// root is the absolute resource root every resolved path must stay under.
	root string
}

func New(expectedHost string, resourceRoot string) (Policy, error) {
	root, err := filepath.Abs(resourceRoot)
	if err != nil {
		return Policy{}, err
	}

	return Policy{expected: expectedHost, root: root}, nil
}

// Root returns the absolute resource root the policy confines paths to.
func (p Policy) Root() string {
	return p.root
}

// Validate runs the ordered checks against the request. On success the
// resolved path is attached to the request and returned; on failure the
// request is left untouched and the error names the exact violation:
//
//  1. absent Host header                          -> 400
//  2. Host neither the bound host:port nor local  -> 403
//  3. ".." or "//" anywhere in the path           -> 403
//  4. resolution of the path under the root
//  5. resolved path escaping the root             -> 403
func (p Policy) Validate(request *http.Request) (string, error) {
	host, found := request.Host()
	if !found {
		return "", status.ErrMissingHost
	}

	if host != p.expected && !address.IsLoopback(host) {
		return "", status.ErrHostMismatch
	}

	// coarse traversal screen: rejected before resolution, so not even
	// paths that would normalize back inside the root get through
	if strings.Contains(request.Path, "..") || strings.Contains(request.Path, "//") {
		return "", status.ErrPathTraversal
	}

	resolved := p.resolve(request.Path)

	// normalization must not have produced an escape
	if resolved != p.root && !strings.HasPrefix(resolved, p.root+string(os.PathSeparator)) {
		return "", status.ErrOutsideRoot
	}

	request.SafePath = resolved

	return resolved, nil
}

func (p Policy) resolve(path string) string {
	if path == "/" {
		return filepath.Join(p.root, indexPage)
	}

	relative := filepath.Clean(strings.TrimPrefix(path, "/"))

	return filepath.Join(p.root, relative)
}
