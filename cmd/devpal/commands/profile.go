package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devpal/newbase/internal/models"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the current user's profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile (cached copy when offline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if localOnly {
				user, err := a.Users.LocalProfile(ctx)
				if err != nil {
					return err
				}
				printUser(user)
				return nil
			}

			env, err := a.Users.GetProfile(ctx)
			if err != nil {
				return describeFailure(err)
			}
			if !env.IsSuccess() || env.Data == nil {
				return fmt.Errorf("could not load profile: %s", env.Message)
			}
			printUser(env.Data)
			fmt.Printf("(%s)\n", env.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&localOnly, "local", false, "read only from the local cache")
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		firstName string
		lastName  string
		bio       string
		phone     string
		city      string
		country   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.Session.CurrentUser(ctx)
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			updated := *current
			if cmd.Flags().Changed("first-name") {
				updated.FirstName = firstName
			}
			if cmd.Flags().Changed("last-name") {
				updated.LastName = lastName
			}
			if cmd.Flags().Changed("bio") {
				updated.Bio = bio
			}
			if cmd.Flags().Changed("phone") {
				updated.PhoneNumber = phone
			}
			if cmd.Flags().Changed("city") {
				updated.City = city
			}
			if cmd.Flags().Changed("country") {
				updated.Country = country
			}

			env, err := a.Users.UpdateProfile(ctx, updated)
			if err != nil {
				return describeFailure(err)
			}
			if !env.IsSuccess() {
				return fmt.Errorf("update failed: %s", env.Message)
			}
			fmt.Println(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&bio, "bio", "", "bio")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&country, "country", "", "country")
	return cmd
}

func printUser(u *models.User) {
	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Printf("  Name:    %s %s\n", u.FirstName, u.LastName)
	}
	if u.Bio != "" {
		fmt.Printf("  Bio:     %s\n", u.Bio)
	}
	if u.City != "" || u.Country != "" {
		fmt.Printf("  Address: %s %s\n", u.City, u.Country)
	}
	fmt.Printf("  Status:  %s\n", u.AccountStatus)
}
