package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zpdzap/muslambda/internal/config"
)

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a project file with the binary detected from Cargo.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(a.flags.configFile) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists.\n", a.flags.configFile)
				return nil
			}

			f := &config.File{Bin: a.flags.bin}
			if a.flags.path != config.DefaultPath {
				f.Path = a.flags.path
			}

			if f.Bin == "" {
				det, err := config.Detect(a.flags.path)
				if err != nil {
					return fmt.Errorf("%w: %v; pass --bin", config.ErrConfig, err)
				}
				if det.Workspace {
					return fmt.Errorf("%w: %s is a workspace manifest; pass --bin or --path to a member", config.ErrConfig, det.Manifest)
				}
				f.Bin = det.Bin
			}

			if err := config.Save(a.flags.configFile, f); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (bin: %s)\n", a.flags.configFile, f.Bin)
			return nil
		},
	}
}
