package file

import "errors"

var (
	ErrInvalidConfig = errors.New("file: invalid storage configuration")
	ErrInvalidPath   = errors.New("file: path escapes the storage root")
	ErrNilReader     = errors.New("file: nil content reader")
	ErrNotFound      = errors.New("file: object not found")
	ErrIsDir         = errors.New("file: path is a directory")

	ErrPrepareDir = errors.New("file: prepare directory")
	ErrWrite      = errors.New("file: write object")
	ErrRemove     = errors.New("file: remove object")
	ErrAWSConfig  = errors.New("file: load aws config")

	ErrBucketMissing = errors.New("file: bucket does not exist")
	ErrForbidden     = errors.New("file: access denied by storage provider")
	ErrThrottled     = errors.New("file: storage provider throttled the request")
	ErrTimeout       = errors.New("file: storage request timed out")
	ErrCanceled      = errors.New("file: storage request canceled")
)
