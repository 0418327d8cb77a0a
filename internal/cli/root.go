// Package cli implements the image-derive-mcp command-line interface.
//
// Run without a subcommand (or with "serve") the binary is an MCP server on
// stdin/stdout. The resize, crop, watermark, text and merge subcommands run
// one derivation directly from the shell.
//
// Settings come from the optional --config file and IMAGE_MCP_* environment
// variables; --verbose forces debug logging. Logs always go to stderr.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-derive-mcp/internal/config"
	"github.com/ironsheep/image-derive-mcp/internal/server"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version and
// reported to MCP clients. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	server.ServerVersion = v
}

// Execute runs the command tree against os.Args with logs written to stderr.
func Execute(ctx context.Context, stderr io.Writer) error {
	return NewRootCommand(stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the root command. Logs are written to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "image-derive-mcp",
		Short: "Derive thumbnails, watermarks, text overlays and merges from images",
		Long: `image-derive-mcp produces derived images: aspect-preserving thumbnails,
centered square crops, color-keyed watermarks, text overlays and two-layer merges.

Without a subcommand it runs as an MCP server over stdin/stdout.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.Level()
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("image-derive-mcp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML, TOML or JSON)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newResizeCmd())
	root.AddCommand(newCropCmd())
	root.AddCommand(newWatermarkCmd())
	root.AddCommand(newTextCmd())
	root.AddCommand(newMergeCmd())

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	logger.Debug("starting MCP server", "version", version, "commit", commit, "built", date)

	srv := server.New(server.Options{
		Config: configFromContext(ctx),
		Logger: logger,
	})
	return srv.Run(ctx)
}
