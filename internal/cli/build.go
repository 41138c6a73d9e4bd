package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zpdzap/muslambda/internal/builder"
	"github.com/zpdzap/muslambda/internal/config"
	"github.com/zpdzap/muslambda/internal/engine"
	"github.com/zpdzap/muslambda/internal/ui"
)

func (a *App) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the binary and extract " + builder.ArtifactName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, config.CommandBuild)
		},
	}
}

func (a *App) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build the binary and run it behind a local invoke endpoint",
		Long: `Builds the runner target, creates the container with port 9000 mapped to
the runtime's 8080 and attaches to it. Press Ctrl-C to stop; the container
is removed on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, config.CommandRun)
		},
	}
}

// options resolves flags, the project file and defaults into Options.
func (a *App) options(cmd *cobra.Command, command config.Command) (config.Options, error) {
	opts := config.Options{
		Command:       command,
		Path:          a.flags.path,
		Bin:           a.flags.bin,
		OutputPath:    a.flags.outputPath,
		ContainerName: a.flags.containerName,
		EnvFile:       a.flags.envFile,
		Volume:        a.flags.volume,
	}

	file, err := config.Load(a.flags.configFile)
	if err != nil {
		return config.Options{}, err
	}
	file.Apply(&opts, cmd.Flags().Changed)

	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func (a *App) execute(cmd *cobra.Command, command config.Command) error {
	opts, err := a.options(cmd, command)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(a.stderr)
	options := []builder.Option{
		builder.WithLogger(a.logger),
		builder.WithGetenv(a.getenv),
		builder.WithProgress(func(step engine.Step, detail string) {
			printer.Step(string(step), detail)
		}),
	}

	b, err := builder.New(opts, a.newRunner(a.logger), append(options, a.builderOptions...)...)
	if err != nil {
		return err
	}
	if err := b.Execute(cmd.Context()); err != nil {
		return err
	}

	switch command {
	case config.CommandBuild:
		printer.Success(fmt.Sprintf("%s written to %s", builder.ArtifactName, opts.OutputPath))
	case config.CommandRun:
		if !b.Interrupted() {
			printer.Notice(fmt.Sprintf("container %s was not removed; run `docker rm %s` when done", opts.ContainerName, opts.ContainerName))
		}
	}
	return nil
}
