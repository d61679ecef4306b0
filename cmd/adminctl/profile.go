// AngelaMos | 2026
// profile.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your own profile",
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var user userView
		if err := client.Do("GET", "/users/profile", nil, &user); err != nil {
			return err
		}

		printUser(user)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your first/last name or avatar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		body := map[string]any{}
		if cmd.Flags().Changed("first-name") {
			body["first_name"] = profileFirstName
		}
		if cmd.Flags().Changed("last-name") {
			body["last_name"] = profileLastName
		}
		if cmd.Flags().Changed("avatar-url") {
			body["avatar_url"] = profileAvatarURL
		}

		if len(body) == 0 {
			return fmt.Errorf("nothing to update: pass at least one flag")
		}

		var updated userView
		if err := client.Do("PATCH", "/users/profile", body, &updated); err != nil {
			return err
		}

		printUser(updated)
		return nil
	},
}

var (
	profileFirstName string
	profileLastName  string
	profileAvatarURL string
)

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "new first name")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "new last name")
	profileUpdateCmd.Flags().StringVar(&profileAvatarURL, "avatar-url", "", "new avatar URL")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}
