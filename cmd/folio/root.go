package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio"
)

var (
	verbose       bool
	dirFlag       string
	predictionsFl string
	blogPostsFl   string
	atomicFl      bool
	versioningFl  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Edit the predictions and blog posts of a static site",
	Long: `Folio edits the JSON collections that back a static site: structured
predictions and markdown blog posts. Without a subcommand it opens the
terminal editor.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&dirFlag, "dir", "C", ".", "Directory inside the site project")
	flags.StringVar(&predictionsFl, "predictions", "", "Path of the predictions file (overrides folio.yaml)")
	flags.StringVar(&blogPostsFl, "blog-posts", "", "Path of the blog posts file (overrides folio.yaml)")
	flags.BoolVar(&atomicFl, "atomic", false, "Write through a temp file and rename")
	flags.BoolVar(&versioningFl, "versioning", false, "Commit every save to git")
}

// workspaceOptions turns the changed persistent flags into options, so that
// folio.yaml keeps its say over anything not passed explicitly.
func workspaceOptions(cmd *cobra.Command, logger *slog.Logger) []folio.Option {
	opts := []folio.Option{folio.WithLogger(logger)}
	flags := cmd.Flags()
	if predictionsFl != "" {
		opts = append(opts, folio.WithPredictionsFile(predictionsFl))
	}
	if blogPostsFl != "" {
		opts = append(opts, folio.WithBlogPostsFile(blogPostsFl))
	}
	if flags.Changed("atomic") {
		opts = append(opts, folio.WithAtomic(atomicFl))
	}
	if flags.Changed("versioning") {
		opts = append(opts, folio.WithVersioning(versioningFl))
	}
	return opts
}

func openWorkspace(cmd *cobra.Command) *folio.Workspace {
	ws, err := folio.Open(dirFlag, workspaceOptions(cmd, slog.Default())...)
	if err != nil {
		fatal("Error opening project", err)
	}
	return ws
}
