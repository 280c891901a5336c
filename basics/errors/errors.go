package errors

import "errors"

var (
	ErrMalformedRange      = errors.New("range header is malformed")
	ErrUnsatisfiableRange  = errors.New("requested range is not satisfiable")
	ErrResourceUnavailable = errors.New("resource is not readable")

	ErrBaseDirectory = errors.New("base directory is not usable")
	ErrTimeout       = errors.New("timeout value is not valid")
	ErrChunkCount    = errors.New("chunk count is not valid")
	ErrChunkSize     = errors.New("chunk size does not match the requested range")
)
