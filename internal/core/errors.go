package core

import "errors"

var (
	ErrNotFound        = errors.New("jamb: document not found")
	ErrInvalidBlocks   = errors.New("jamb: invalid page builder blocks")
	ErrMissingType     = errors.New("jamb: block has no type")
	ErrMissingKey      = errors.New("jamb: block has no key")
	ErrDuplicateKey    = errors.New("jamb: duplicate block key")
	ErrInvalidImageRef = errors.New("jamb: invalid image asset reference")
)
