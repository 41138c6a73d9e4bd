package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zpdzap/muslambda/internal/builder"
	"github.com/zpdzap/muslambda/internal/config"
	"github.com/zpdzap/muslambda/internal/engine"
	"github.com/zpdzap/muslambda/internal/logging"
)

// App is the muslambda command line with its wired dependencies.
type App struct {
	rootCmd *cobra.Command
	flags   globalFlags

	newRunner func(*slog.Logger) engine.Runner
	getenv    func(string) string
	stderr    io.Writer
	logger    *slog.Logger

	// extra builder options, used by tests
	builderOptions []builder.Option

	version string
	commit  string
	date    string
}

type globalFlags struct {
	path          string
	bin           string
	outputPath    string
	containerName string
	envFile       string
	volume        string
	configFile    string
	verbose       bool
	quiet         bool
}

// New creates the CLI wired to the real docker runner.
func New() *App {
	app := &App{
		newRunner: func(l *slog.Logger) engine.Runner { return engine.NewDocker(l) },
		getenv:    os.Getenv,
		stderr:    os.Stderr,
		logger:    slog.Default(),
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "muslambda",
		Short: "Build static musl binaries for serverless functions inside a container",
		Long: `muslambda renders a multi-stage container recipe, builds a static musl
binary inside it and either extracts bootstrap.zip to the host (build) or
runs the function behind a local invoke endpoint on port 9000 (run).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.New(a.stderr, logging.Level(a.flags.verbose, a.flags.quiet))
			slog.SetDefault(a.logger)
		},
	}

	pf := a.rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.path, "path", "p", config.DefaultPath, "Directory to use as root of project")
	pf.StringVarP(&a.flags.bin, "bin", "b", "", "Name of the binary to build (required)")
	pf.StringVar(&a.flags.outputPath, "output-path", config.DefaultOutputPath, "Host directory that receives "+builder.ArtifactName)
	pf.StringVarP(&a.flags.containerName, "container-name", "c", config.DefaultContainerName, "Name of the created container")
	pf.StringVarP(&a.flags.envFile, "env-file", "e", "", "Env file forwarded to docker create")
	pf.StringVarP(&a.flags.volume, "volume", "v", "", "Volume mapping forwarded to docker create")
	pf.StringVar(&a.flags.configFile, "config", config.ProjectFile, "Project file with default values")
	pf.BoolVarP(&a.flags.verbose, "verbose", "V", false, "Verbose output")
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, "Only print warnings and errors")

	a.rootCmd.AddCommand(
		a.newBuildCmd(),
		a.newRunCmd(),
		a.newInitCmd(),
		a.newVersionCmd(),
	)
}
