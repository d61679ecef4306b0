// AngelaMos | 2026
// auth.go

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type tokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and store the issued token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		var tokens tokenView
		err = client.Do("POST", "/auth/login", map[string]string{
			"email":    args[0],
			"password": password,
		}, &tokens)
		if err != nil {
			return err
		}

		if err := client.SetToken(tokens.AccessToken); err != nil {
			return err
		}

		claims, err := client.DecodeClaims()
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", claims.Email, claims.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.ClearToken(); err != nil {
			return err
		}

		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity encoded in the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		claims, err := client.DecodeClaims()
		if err != nil {
			return err
		}

		fmt.Printf("User ID: %s\n", claims.UserID)
		fmt.Printf("Email:   %s\n", claims.Email)
		fmt.Printf("Role:    %s\n", claims.Role)
		if !claims.ExpiresAt.IsZero() {
			fmt.Printf("Expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
		}
		if claims.IsExpired() {
			fmt.Println("Warning: token has expired, log in again")
		}

		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		body := map[string]string{
			"email":    args[0],
			"password": password,
		}
		if firstName != "" {
			body["first_name"] = firstName
		}
		if lastName != "" {
			body["last_name"] = lastName
		}

		var created userView
		if err := client.Do("POST", "/auth/register", body, &created); err != nil {
			return err
		}

		fmt.Printf("Account created: %s\n", created.Email)
		return nil
	},
}

var (
	firstName string
	lastName  string
)

func init() {
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return strings.TrimSpace(line), nil
}
