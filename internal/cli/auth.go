package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/netpulse/netpulse/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out, and inspect the current session",
	}
	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthRegisterCmd(),
		newAuthLogoutCmd(),
		newAuthWhoamiCmd(),
	)
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = readLine("Email: ")
			}
			if password == "" {
				password = readSecret("Password: ")
			}

			resp, err := apiClient.Auth().Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			viper.Set("auth.token", resp.AccessToken)
			if resp.User != nil {
				viper.Set("auth.email", resp.User.Email)
			}
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new user account (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = readLine("Email: ")
			}
			if password == "" {
				password = readSecret("Password: ")
				if readSecret("Confirm password: ") != password {
					return fmt.Errorf("passwords do not match")
				}
			}

			u, err := apiClient.Auth().Register(context.Background(), client.RegisterRequest{
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("Created account %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", "", "account role: admin or operator")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.email", "")
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := apiClient.Auth().Me(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(u)
			}
			fmt.Printf("Email: %s\n", u.Email)
			fmt.Printf("Role:  %s\n", u.Role)
			fmt.Printf("ID:    %d\n", u.ID)
			return nil
		},
	}
}

func readLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// readSecret reads without echoing so passwords stay off the terminal.
func readSecret(prompt string) string {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(b)
}
