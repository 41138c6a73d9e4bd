package config

import "errors"

var (
	ErrConfig        = errors.New("invalid configuration")
	ErrNoManifest    = errors.New("no Cargo.toml found")
	ErrAlreadyExists = errors.New("project file already exists")
)
