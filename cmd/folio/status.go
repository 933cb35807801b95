package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/editor"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved project, its collections and their state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace(cmd)
		// Load failures are part of the report.
		_, _ = ws.Shell.Load(context.Background())
		state := ws.Shell.State().(editor.ShellState)

		out := cmd.OutOrStdout()
		if statusJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Root   string `json:"root"`
				Config any    `json:"config"`
				editor.ShellState
			}{ws.Root, ws.Config, state}); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Fprintf(out, "root: %s\n", ws.Root)
		for i, s := range state.Sessions {
			kind := ws.Shell.Sessions()[i].Kind()
			fmt.Fprintf(out, "%s: %s\n", kind.Title, ws.CollectionPath(kind))
			if s.LoadError != "" {
				fmt.Fprintf(out, "  error: %s\n", s.LoadError)
				continue
			}
			fmt.Fprintf(out, "  records: %d\n", s.Records)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}
