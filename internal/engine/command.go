package engine

import "strings"

// Step names an engine subcommand within the builder's sequence.
type Step string

const (
	StepBuild  Step = "build"
	StepCreate Step = "create"
	StepCopy   Step = "cp"
	StepRemove Step = "rm"
	StepStart  Step = "start"
)

// Command is an ordered engine argument vector. The subcommand is always the
// first argument.
type Command struct {
	Step Step
	args []string
}

// NewCommand starts a vector for the given step.
func NewCommand(step Step) *Command {
	return &Command{Step: step, args: []string{string(step)}}
}

// Arg appends arguments verbatim.
func (c *Command) Arg(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// ArgIf appends arguments only when ok is true.
func (c *Command) ArgIf(ok bool, args ...string) *Command {
	if ok {
		c.args = append(c.args, args...)
	}
	return c
}

// Opt appends flag followed by value when value is non-empty.
func (c *Command) Opt(flag, value string) *Command {
	return c.ArgIf(value != "", flag, value)
}

// Args returns a copy of the argument vector, excluding the executable.
func (c *Command) Args() []string {
	out := make([]string, len(c.args))
	copy(out, c.args)
	return out
}

func (c *Command) String() string {
	return Executable + " " + strings.Join(c.args, " ")
}
