// Package remote opens JSON documents kept in object storage as byte streams.
// Objects are never downloaded whole; the caller reads Body as it parses.
package remote

import (
	"errors"
	"io"
)

// UnknownSize is reported when the object store does not return a content length
const UnknownSize int64 = -1

// ErrObjectNotFound is wrapped by Open when the object does not exist
var ErrObjectNotFound = errors.New("object not found")

// Object is an opened remote object
type Object struct {
	// Name identifies the object in log messages
	Name string
	// Body streams the object contents. It must be closed by the caller.
	Body io.ReadCloser
	// Size is the object size in bytes, or UnknownSize
	Size int64
}
