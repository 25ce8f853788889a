package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/output"
	"github.com/topo-sh/topo/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a repository and print file events as they happen",
		Long: `Watch a repository for file changes, printing each debounced batch of
events. Runs until interrupted (Ctrl+C).

Watching does not itself update the persisted index — reindex with
'topo index --deep' after a batch of changes settles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			return runWatch(cmd, root)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command, root string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	opts := watcher.DefaultOptions()
	opts.IgnorePatterns = cfg.Ignore.Patterns

	w, err := watcher.NewHybridWatcher(opts)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	out.Statusf("", "Watching %s (%s)...", root, w.WatcherType())

	startErr := make(chan error, 1)
	go func() { startErr <- w.Start(ctx, root) }()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return nil
		case err := <-startErr:
			return err
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			for _, ev := range batch {
				out.Statusf("", "%s %s", ev.Operation, ev.Path)
			}
		case err, ok := <-w.Errors():
			if !ok {
				continue
			}
			out.Warningf("%v", err)
		}
	}
}
