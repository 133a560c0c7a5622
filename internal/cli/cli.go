package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fkoehler/stadtticker/internal/config"
	"github.com/fkoehler/stadtticker/internal/eventsite"
	"github.com/fkoehler/stadtticker/internal/fetch"
	"github.com/fkoehler/stadtticker/internal/logger"
	"github.com/fkoehler/stadtticker/internal/notifier"
	"github.com/fkoehler/stadtticker/internal/pipeline"
	"github.com/fkoehler/stadtticker/internal/sessionnet"
	"github.com/fkoehler/stadtticker/internal/storage"
)

var version = "dev"

var (
	flagConfig       string
	flagStateFile    string
	flagDryRun       bool
	flagPostExisting bool
	flagVerbose      bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stadtticker",
		Short: "Push new council sessions and town events to Telegram",
		Long: `stadtticker scrapes a SessionNet council-information site and the
municipal events site, merges both views and sends one Telegram message
per newly observed event. Already-seen events are tracked in a state
file, so a cron-triggered run only notifies about what is new.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: ./stadtticker.yaml)")
	cmd.Flags().StringVar(&flagStateFile, "state-file", "", "Seen-set state file (overrides config)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print messages instead of sending them")
	cmd.Flags().BoolVar(&flagPostExisting, "post-existing", false, "Deliver existing events on the first run")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stadtticker %s\n", version)
		},
	})

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagPostExisting {
		cfg.PostExisting = true
	}

	var sink notifier.Notifier
	if flagDryRun {
		sink = notifier.NewDryRunNotifier(os.Stdout)
	} else {
		if err := cfg.ValidateDelivery(); err != nil {
			return err
		}
		sink, err = notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
	}

	store, err := storage.New(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	client := fetch.New(fetch.Options{
		UserAgent:  cfg.FetchUserAgent,
		Timeout:    cfg.FetchTimeout,
		Delay:      cfg.FetchDelay,
		SkipRobots: cfg.FetchNoRobots,
	})

	p := pipeline.New(store, sink, cfg.PostExisting,
		sessionnet.New(client, cfg.SessionNetInfoURL, cfg.SessionNetBaseURL),
		eventsite.New(client, eventsite.Config{
			SitemapURL:    cfg.EventSiteSitemapURL,
			ListingURL:    cfg.EventSiteListingURL,
			PermalinkPath: cfg.EventSitePermalinkPath,
			Keywords:      cfg.EventSiteKeywords,
		}),
	)

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Info("run complete", logger.Fields{
		"observed":  result.Observed,
		"new":       result.New,
		"delivered": result.Delivered,
		"bootstrap": result.Bootstrap,
	})
	if flagVerbose {
		logger.Debug("run counters", logger.RunSummary())
	}
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
