package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/common"
)

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				if email, err = promptLine(reader, "Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			env, err := a.Users.Login(ctx, email, string(password))
			if err != nil {
				return describeFailure(err)
			}
			if !env.IsSuccess() {
				return fmt.Errorf("login failed: %s", env.Message)
			}

			fmt.Printf("Logged in as %s (%s)\n", env.Data.Username, env.Data.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reader := bufio.NewReader(os.Stdin)
			if req.Username == "" {
				if req.Username, err = promptLine(reader, "Username"); err != nil {
					return err
				}
			}
			if req.Email == "" {
				if req.Email, err = promptLine(reader, "Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)
			req.Password = string(password)

			env, err := a.Users.Register(ctx, req)
			if err != nil {
				return describeFailure(err)
			}
			if !env.IsSuccess() {
				return fmt.Errorf("registration failed: %s", env.Message)
			}

			fmt.Println(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session and purge cached user data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Users.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				if email, err = promptLine(reader, "Email"); err != nil {
					return err
				}
			}

			env, err := a.Users.ForgotPassword(ctx, email)
			if err != nil {
				return describeFailure(err)
			}
			fmt.Println(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

// describeFailure turns a classified failure into a user-facing message,
// branching on the closed kind set rather than error text.
func describeFailure(err error) error {
	switch api.KindOf(err) {
	case api.KindNoConnectivity:
		return fmt.Errorf("no network connection: %w", err)
	case api.KindTimeout:
		return fmt.Errorf("the server took too long to respond: %w", err)
	case api.KindServer:
		return fmt.Errorf("the server reported an error: %w", err)
	default:
		return err
	}
}
