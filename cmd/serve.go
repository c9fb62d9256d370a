package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/huntboard/huntboard/internal/config"
	"github.com/huntboard/huntboard/internal/dependency"
	"github.com/huntboard/huntboard/internal/remind"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent core: operations feed and reminder scheduler",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s Starting huntboard agent core...\n", logo)

	// Reminder firings run the digest workflow; its result reaches the
	// desktop shell through the operations feed.
	c.Reminders().SetOnFire(func(ctx context.Context, r remind.Reminder) (string, error) {
		digest, _, err := c.Workflows().DailyDigest(ctx)
		return digest, err
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Feed.Enabled {
		g.Go(func() error { return c.FeedServer().Start(gctx) })
		fmt.Printf("✓ Operations feed on ws://%s:%d/ops\n", cfg.Feed.Host, cfg.Feed.Port)
	}
	if cfg.Reminders.Enabled {
		g.Go(func() error { return c.Reminders().Start(gctx) })
		fmt.Println("✓ Reminder scheduler running")
	}

	fmt.Printf("%s Agent core running. Press Ctrl+C to stop.\n", logo)

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
