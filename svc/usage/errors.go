package usage

import "errors"

var (
	ErrNotFound        = errors.New("usage.errors.not_found")
	ErrUnknownResource = errors.New("usage.errors.unknown_resource")
)
