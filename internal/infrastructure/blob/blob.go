// Package blob holds the avatar stores: a local directory served by the API
// itself and an S3-compatible bucket.
package blob

import (
	"errors"
	"path"
	"strings"
)

var ErrInvalidName = errors.New("blob name must be a plain file name")

// validName rejects anything that could escape the store's namespace.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && path.Base(name) == name
}

// nameFromURL returns the blob name for url when it was published under prefix.
func nameFromURL(prefix, url string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	return name, validName(name)
}
