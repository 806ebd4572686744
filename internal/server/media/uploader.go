// Package media uploads local files to an S3-compatible object store and
// returns a public URL.
package media

import (
	"context"
	"errors"
)

// Typed upload failures. Callers can tell a missing local file from a
// rejected upload from a transport failure.
var (
	// ErrLocalFileMissing indicates the local file does not exist
	ErrLocalFileMissing = errors.New("local file missing")

	// ErrUploadRejected indicates the remote service refused the object
	ErrUploadRejected = errors.New("upload rejected")
)

// Uploader sends a local file to remote storage and returns its public URL.
// The local file is removed exactly once after an upload attempt, on both
// success and failure paths.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
