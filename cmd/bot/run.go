package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eliseohh/demobot/internal/bot"
	"github.com/eliseohh/demobot/internal/config"
	"github.com/eliseohh/demobot/internal/event"
	"github.com/eliseohh/demobot/internal/journal"
	"github.com/eliseohh/demobot/internal/outbox"
	"github.com/eliseohh/demobot/internal/router"
	"github.com/eliseohh/demobot/internal/tap"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot and long-poll for updates",
		Example: `  # Token from the environment
  TELEGRAM_TOKEN=<token> demobot run

  # Token from the OS keychain, Russian texts, journal enabled
  demobot token set <token>
  BOT_LANGUAGE=ru BOT_JOURNAL=data/journal.db demobot run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, opts)
		},
	}
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	return config.Load(opts.configPath, cmd.Flags().Changed("config"))
}

func newLogger(cfg *config.Config) *slog.Logger {
	lvl, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newQuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runBot(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	texts, err := router.TextsFor(cfg.Language)
	if err != nil {
		return err
	}

	token, err := cfg.ResolveToken()
	if err != nil {
		return err
	}

	var sinks event.Multi

	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path, logger)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		defer j.Close()
		sinks = append(sinks, j)
		logger.Info("journal enabled", "path", cfg.Journal.Path)
	}

	if cfg.Tap.Addr != "" {
		tp := tap.New(logger)
		if err := tp.Start(cfg.Tap.Addr); err != nil {
			return fmt.Errorf("tap: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			tp.Close(ctx)
		}()
		sinks = append(sinks, tp)
	}

	b, err := bot.New(bot.Config{
		Token:        token,
		PollTimeout:  cfg.PollTimeout,
		AllowedChats: cfg.AllowedChats,
		URL:          cfg.APIURL,
	}, router.New(texts), logger, sinks)
	if err != nil {
		return fmt.Errorf("bot init failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Outbox.URL != "" {
		ob, err := outbox.Dial(cfg.Outbox.URL, logger)
		if err != nil {
			return fmt.Errorf("outbox: %w", err)
		}
		defer ob.Close()
		go func() {
			if err := ob.Consume(ctx, cfg.Outbox.Queue, b); err != nil {
				logger.Error("outbox stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		b.Stop()
	}()

	color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "🤖 Bot online (language: %s). Listening...\n", cfg.Language)
	b.Start()
	return nil
}
