// AngelaMos | 2026
// users.go

package main

import (
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type userView struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Role       string  `json:"role"`
	IsDisabled bool    `json:"is_disabled"`
	AvatarURL  *string `json:"avatar_url"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The same gate the web client applies before rendering the
		// admin pages; the server enforces it again on every request.
		client, err := newClient()
		if err != nil {
			return err
		}

		claims, err := client.DecodeClaims()
		if err != nil {
			return err
		}

		if !claims.IsAdmin() {
			return fmt.Errorf("admin role required")
		}

		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		query := url.Values{}
		if usersSearch != "" {
			query.Set("search", usersSearch)
		}
		if usersRole != "" {
			query.Set("role", usersRole)
		}

		path := "/users/"
		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		var users []userView
		if err := client.Do("GET", path, nil, &users); err != nil {
			return err
		}

		printUserTable(users)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var user userView
		if err := client.Do("GET", "/users/"+args[0], nil, &user); err != nil {
			return err
		}

		printUser(user)
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a user with an arbitrary role",
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

		body := map[string]any{
			"email":    args[0],
			"password": password,
			"role":     usersNewRole,
		}
		if usersFirstName != "" {
			body["first_name"] = usersFirstName
		}
		if usersLastName != "" {
			body["last_name"] = usersLastName
		}

		var created userView
		if err := client.Do("POST", "/users/", body, &created); err != nil {
			return err
		}

		fmt.Printf("Created user %s (%s)\n", created.Email, created.ID)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Partially update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		body := map[string]any{}
		if cmd.Flags().Changed("email") {
			body["email"] = usersEmail
		}
		if cmd.Flags().Changed("first-name") {
			body["first_name"] = usersFirstName
		}
		if cmd.Flags().Changed("last-name") {
			body["last_name"] = usersLastName
		}
		if cmd.Flags().Changed("role") {
			body["role"] = usersNewRole
		}
		if cmd.Flags().Changed("disabled") {
			body["is_disabled"] = usersDisabled
		}
		if cmd.Flags().Changed("avatar-url") {
			body["avatar_url"] = usersAvatarURL
		}

		if len(body) == 0 {
			return fmt.Errorf("nothing to update: pass at least one flag")
		}

		var updated userView
		if err := client.Do("PATCH", "/users/"+args[0], body, &updated); err != nil {
			return err
		}

		printUser(updated)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Do("DELETE", "/users/"+args[0], nil, nil); err != nil {
			return err
		}

		fmt.Println("User deleted")
		return nil
	},
}

var (
	usersSearch    string
	usersRole      string
	usersNewRole   string
	usersEmail     string
	usersFirstName string
	usersLastName  string
	usersAvatarURL string
	usersDisabled  bool
)

func init() {
	usersListCmd.Flags().StringVar(&usersSearch, "search", "", "filter by email or name")
	usersListCmd.Flags().StringVar(&usersRole, "role", "", "filter by role")

	usersCreateCmd.Flags().StringVar(&usersNewRole, "role", "user", "role (user|admin)")
	usersCreateCmd.Flags().StringVar(&usersFirstName, "first-name", "", "first name")
	usersCreateCmd.Flags().StringVar(&usersLastName, "last-name", "", "last name")

	usersUpdateCmd.Flags().StringVar(&usersEmail, "email", "", "new email")
	usersUpdateCmd.Flags().StringVar(&usersFirstName, "first-name", "", "new first name")
	usersUpdateCmd.Flags().StringVar(&usersLastName, "last-name", "", "new last name")
	usersUpdateCmd.Flags().StringVar(&usersNewRole, "role", "", "new role (user|admin)")
	usersUpdateCmd.Flags().BoolVar(&usersDisabled, "disabled", false, "set disabled flag")
	usersUpdateCmd.Flags().StringVar(&usersAvatarURL, "avatar-url", "", "new avatar URL")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}

func printUserTable(users []userView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tDISABLED\tCREATED")

	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			u.ID,
			u.Email,
			fullName(u),
			u.Role,
			u.IsDisabled,
			formatTimestamp(u.CreatedAt),
		)
	}

	//nolint:errcheck // best-effort terminal output
	_ = w.Flush()
}

func printUser(u userView) {
	fmt.Printf("ID:       %s\n", u.ID)
	fmt.Printf("Email:    %s\n", u.Email)
	fmt.Printf("Name:     %s\n", fullName(u))
	fmt.Printf("Role:     %s\n", u.Role)
	fmt.Printf("Disabled: %t\n", u.IsDisabled)
	if u.AvatarURL != nil {
		fmt.Printf("Avatar:   %s\n", *u.AvatarURL)
	}
	fmt.Printf("Created:  %s\n", formatTimestamp(u.CreatedAt))
	fmt.Printf("Updated:  %s\n", formatTimestamp(u.UpdatedAt))
}

func fullName(u userView) string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		name = "-"
	}
	return name
}

func formatTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("2006-01-02 15:04")
}
