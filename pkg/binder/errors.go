package binder

import "errors"

var (
	ErrMissingContentType   = errors.New("binder: request has no content type")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrDecodeJSON           = errors.New("binder: malformed JSON body")
	ErrPathParam            = errors.New("binder: bad path parameter")
)
