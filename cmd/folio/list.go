package main

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/editor"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list <predictions|blog>",
	Short: "List the records of a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			fatal("Invalid --match pattern", fmt.Errorf("%q", listMatch))
		}

		session := loadSession(cmd, args[0])

		var matched []core.Record
		for _, rec := range session.Records() {
			if listMatch != "" {
				id, _ := rec.ID()
				ok, _ := doublestar.Match(listMatch, id)
				if !ok {
					continue
				}
			}
			matched = append(matched, rec)
		}

		if listJSON {
			data, err := fs.EncodeCollection(matched)
			if err != nil {
				fatal("Error encoding JSON", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return
		}

		kind := session.Kind()
		for _, rec := range matched {
			fmt.Fprintln(cmd.OutOrStdout(), kind.Label(rec))
		}
	},
}

// loadSession opens the project and loads a single collection.
func loadSession(cmd *cobra.Command, name string) *editor.Session {
	ws := openWorkspace(cmd)
	session, ok := ws.Shell.Session(name)
	if !ok {
		fatal("Unknown collection", fmt.Errorf("%q (want predictions or blog)", name))
	}
	if err := session.Load(context.Background()); err != nil {
		fatal("Error loading "+session.Kind().Title, err)
	}
	return session
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only ids matching a glob, e.g. 'B0*'")
}
