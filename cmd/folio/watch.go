package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	folioLifecycle "github.com/aretw0/folio/pkg/adapters/lifecycle"
	"github.com/aretw0/folio/pkg/editor"
)

var watchCmd = &cobra.Command{
	Use:   "watch [collection]",
	Short: "Print changes made to the collection files by other programs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace(cmd)

		sessions := ws.Shell.Sessions()
		if len(args) == 1 {
			s, ok := ws.Shell.Session(args[0])
			if !ok {
				fatal("Unknown collection", fmt.Errorf("%q (want predictions or blog)", args[0]))
			}
			sessions = []*editor.Session{s}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, s := range sessions {
			events, err := s.Watch(ctx)
			if err != nil {
				fatal("Error watching "+s.Kind().Title, err)
			}
			if events == nil {
				continue
			}
			src := folioLifecycle.NewSource(s.Kind().Name, events)
			if err := src.Start(ctx); err != nil {
				fatal("Error watching "+s.Kind().Title, err)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				for e := range src.Events() {
					mu.Lock()
					fmt.Fprintln(out, e)
					mu.Unlock()
				}
			}()
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "watching, press Ctrl+C to stop")
		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
