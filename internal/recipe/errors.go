package recipe

import "errors"

var (
	ErrTemplate = errors.New("recipe template failed")
	ErrIO       = errors.New("recipe file operation failed")
)
