package config

import (
	"fmt"
	"strings"
)

const (
	DefaultPath          = "."
	DefaultOutputPath    = "."
	DefaultContainerName = "lambda"
	ProjectFile          = ".muslambda.yaml"
)

// Command selects which pipeline the builder drives.
type Command string

const (
	CommandBuild Command = "build"
	CommandRun   Command = "run"
)

func (c Command) String() string { return string(c) }

// Options is the resolved configuration for a single invocation.
// It is not modified once the builder has been constructed.
type Options struct {
	Command       Command
	Path          string // source subdirectory handed to the recipe as "path"
	Bin           string // binary handed to the recipe as "bin"
	OutputPath    string
	ContainerName string
	EnvFile       string // optional, forwarded to create
	Volume        string // optional, forwarded to create
	Recipe        string // optional template file replacing the embedded recipe
}

// Defaults returns Options with every defaulted field populated.
func Defaults(cmd Command) Options {
	return Options{
		Command:       cmd,
		Path:          DefaultPath,
		OutputPath:    DefaultOutputPath,
		ContainerName: DefaultContainerName,
	}
}

// Validate checks the invariants the builder relies on.
func (o Options) Validate() error {
	switch o.Command {
	case CommandBuild, CommandRun:
	default:
		return fmt.Errorf("%w: unknown command %q", ErrConfig, o.Command)
	}
	if strings.TrimSpace(o.Bin) == "" {
		return fmt.Errorf("%w: the binary name is required (--bin)", ErrConfig)
	}
	if o.ContainerName == "" {
		return fmt.Errorf("%w: container name must not be empty", ErrConfig)
	}
	return nil
}
