package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eliseohh/demobot/internal/outbox"
)

func newOutboxCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Interact with the RabbitMQ outbox",
	}

	var chatID int64
	send := &cobra.Command{
		Use:   "send <text>",
		Short: "Queue a text message for delivery by a running bot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Outbox.URL == "" {
				return errors.New("outbox is disabled: set outbox.url or BOT_OUTBOX_URL")
			}

			msg := outbox.Message{ChatID: chatID, Text: strings.Join(args, " ")}
			if msg.ChatID == 0 {
				return outbox.ErrNoChat
			}

			client, err := outbox.Dial(cfg.Outbox.URL, newQuietLogger())
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Publish(cmd.Context(), cfg.Outbox.Queue, msg); err != nil {
				return fmt.Errorf("publish: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✔ Queued for chat %d on %s\n", msg.ChatID, cfg.Outbox.Queue)
			return nil
		},
	}
	send.Flags().Int64Var(&chatID, "chat", 0, "destination chat id")
	_ = send.MarkFlagRequired("chat")

	cmd.AddCommand(send)
	return cmd
}
