package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
)

var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print the id the next new blog post will get",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := loadSession(cmd, core.BlogPosts.Name)
		kind := session.Kind()
		fmt.Fprintln(cmd.OutOrStdout(), core.NextID(session.Records(), kind.IDPrefix, kind.IDWidth))
	},
}

func init() {
	rootCmd.AddCommand(nextIDCmd)
}
