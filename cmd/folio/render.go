package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/render"
)

var (
	renderFile     string
	renderOut      string
	renderTerminal bool
	renderWidth    int
)

var renderCmd = &cobra.Command{
	Use:   "render [post-id]",
	Short: "Render a blog post body (or a markdown file) as an HTML preview page",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title, src := renderSource(cmd, args)

		var out string
		var err error
		if renderTerminal {
			out, err = render.NewTerminal(render.StyleAuto).Render(src, renderWidth)
		} else {
			out, err = render.Document(title, src)
		}
		if err != nil {
			fatal("Error rendering", err)
		}

		if renderOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), out)
			return
		}
		if err := os.WriteFile(renderOut, []byte(out), 0644); err != nil {
			fatal("Error writing output", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", renderOut)
	},
}

func renderSource(cmd *cobra.Command, args []string) (title, src string) {
	if renderFile != "" {
		data, err := os.ReadFile(renderFile)
		if err != nil {
			fatal("Error reading file", err)
		}
		return renderFile, string(data)
	}
	if len(args) == 0 {
		fatal("Nothing to render", fmt.Errorf("pass a post id or --file"))
	}

	session := loadSession(cmd, core.BlogPosts.Name)
	for _, rec := range session.Records() {
		if id, _ := rec.ID(); id == args[0] {
			return rec.Text("title", id), core.BlogPosts.Body(rec)
		}
	}
	fatal("Post not found", fmt.Errorf("%q", args[0]))
	return "", ""
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderFile, "file", "", "Render a markdown file instead of a post")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "Write to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderTerminal, "terminal", false, "Render for the terminal instead of HTML")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "Wrap width for --terminal")
}
