package main

import (
	"errors"
	"fmt"

	"tracker/internal/adapters/out/ntfy"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/notification"

	"github.com/spf13/cobra"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	var role string

	command := &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to one role",
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.NtfyURL == "" {
				return errors.New("NTFY_URL is not set")
			}

			request, err := notification.NewRequest(
				kernel.NewUUID(),
				[]notification.Role{notification.Role(role)},
				notification.PriorityNormal,
				"Notifica di prova",
				"Le notifiche del tracker funzionano.",
				"",
			)
			if err != nil {
				return err
			}

			dispatcher := ntfy.NewDispatcher(ntfy.Config{
				BaseURL:     cfg.NtfyURL,
				TopicPrefix: cfg.NtfyTopicPrefix,
				Token:       cfg.NtfyToken,
			})
			if err := dispatcher.Send(command.Context(), request); err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), "Test notification sent")
			return nil
		},
	}

	command.Flags().StringVar(&role, "role", string(notification.RoleOffice), "Recipient role (office or treatments)")
	return command
}
