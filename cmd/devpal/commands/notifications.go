package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devpal/newbase/internal/models"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "List notifications or mark them read",
	}
	cmd.AddCommand(newNotificationsListCmd(), newNotificationsReadCmd())
	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first (cached copies when offline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var items []models.Notification
			if localOnly {
				if items, err = a.Notifications.LocalList(ctx); err != nil {
					return err
				}
			} else {
				env, err := a.Notifications.List(ctx)
				if err != nil {
					return describeFailure(err)
				}
				if !env.IsSuccess() {
					return fmt.Errorf("could not load notifications: %s", env.Message)
				}
				if env.Data != nil {
					items = *env.Data
				}
				defer fmt.Printf("(%s)\n", env.Message)
			}

			if len(items) == 0 {
				fmt.Println("No notifications")
				return nil
			}
			for _, n := range items {
				printNotification(&n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&localOnly, "local", false, "read only from the local cache")
	return cmd
}

func newNotificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			env, err := a.Notifications.MarkRead(ctx, args[0])
			if err != nil {
				return describeFailure(err)
			}
			if !env.IsSuccess() {
				return fmt.Errorf("mark read failed: %s", env.Message)
			}
			fmt.Println(env.Message)
			return nil
		},
	}
}

func printNotification(n *models.Notification) {
	marker := "*"
	if n.ReadStatus == models.ReadStatusRead {
		marker = " "
	}
	when := ""
	if n.SentAt != nil {
		when = time.Unix(*n.SentAt, 0).Format("2006-01-02 15:04")
	}
	fmt.Printf("%s [%s] %s  %s\n", marker, when, n.Title, n.ID)
	if n.ShortDescription != "" {
		fmt.Printf("    %s\n", n.ShortDescription)
	}
}
