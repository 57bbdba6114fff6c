// Package commands implements the CLI commands for darkmagic.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/darkmagic/internal/app"
	"go.trai.ch/darkmagic/internal/build"
)

// CLI represents the command line interface for darkmagic.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Read(ctx context.Context, args []string, opts app.ReadOptions) error
	Clean(ctx context.Context, configPath string) error
	SetVerbosity(n int)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "darkmagic [flags] FILE...",
		Short: "Read the capture conditions of camera images for dark frame matching",
		Long: "darkmagic prints the camera model, body serial number, sensor sensitivity,\n" +
			"exposure time and sensor temperature recorded in the EXIF data of each FILE.\n" +
			"Arguments that do not name an existing file are expanded as glob patterns.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			c.app.SetVerbosity(verbosity)
		},
		RunE: c.runRead,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: darkmagic.yaml in the current or a parent directory)")

	rootCmd.Flags().StringP("output", "o", "", "Output format: text, json or yaml")
	rootCmd.Flags().BoolP("no-cache", "n", false, "Bypass cached metadata and read every file again")
	rootCmd.Flags().IntP("jobs", "j", 0, "Number of files read in parallel (default: number of CPUs)")
	rootCmd.Flags().BoolP("progress", "p", false, "Show live progress on standard error")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())
	rootCmd.AddCommand(c.newCleanCmd())

	return c
}

func (c *CLI) runRead(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		// Display command usage help without returning an error
		_ = cmd.Help()
		return nil
	}
	output, _ := cmd.Flags().GetString("output")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	jobs, _ := cmd.Flags().GetInt("jobs")
	configPath, _ := cmd.Flags().GetString("config")
	progress, _ := cmd.Flags().GetBool("progress")

	return c.app.Read(cmd.Context(), args, app.ReadOptions{
		Output:     output,
		NoCache:    noCache,
		Jobs:       jobs,
		ConfigPath: configPath,
		Progress:   progress,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
