package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/pkg/adapters/tui"
)

var (
	noWatch    bool
	styleFlag  string
	exportFlag string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the terminal editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd)
	},
}

func runEdit(cmd *cobra.Command) error {
	// Resolve the project once to learn where the log file goes; the screen
	// belongs to the editor from here on.
	probe := openWorkspace(cmd)
	stateDir, err := probe.EnsureStateDir()
	if err != nil {
		return err
	}
	logPath := probe.Config.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(stateDir, logPath)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	ws, err := folio.Open(dirFlag, workspaceOptions(cmd, logger)...)
	if err != nil {
		return err
	}

	exportPath := exportFlag
	if exportPath == "" {
		exportPath = ws.Config.StatePath(ws.Root, ws.Config.PreviewFile)
	}
	watch := ws.Config.WatchEnabled() && !noWatch
	style := styleFlag
	if style == "" {
		style = ws.Config.Style
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("editor started", "root", ws.Root, "watch", watch)
	return tui.Run(ctx, ws.Shell, tui.Config{
		PreviewDebounce: ws.Config.PreviewDebounce,
		ExportPath:      exportPath,
		Style:           style,
		Watch:           watch,
		Logger:          logger,
	})
}

func init() {
	rootCmd.AddCommand(editCmd)
	for _, c := range []*cobra.Command{rootCmd, editCmd} {
		c.Flags().BoolVar(&noWatch, "no-watch", false, "Do not report external file changes")
		c.Flags().StringVar(&styleFlag, "style", "", "Preview style: auto, dark, light or notty")
		c.Flags().StringVar(&exportFlag, "export", "", "File written by ctrl+e (default .folio/preview.html)")
	}
}
