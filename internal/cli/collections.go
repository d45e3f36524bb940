package cli

import (
	"github.com/spf13/cobra"
)

// Collection is a collection as returned by the API
type Collection struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Shared         bool   `json:"shared"`
	ShareToken     string `json:"share_token"`
	ShareExpiresAt string `json:"share_expires_at"`
}

// ShareResult is the response to creating a share link
type ShareResult struct {
	ShareURL  string `json:"share_url"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func newCollectionsCmd() *cobra.Command {
	collectionsCmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage photo collections and share links",
	}

	collectionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Collection
			if err := client.Get("/api/v1/collections", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
	}
	description := createCmd.Flags().String("description", "", "Collection description")
	createCmd.RunE = func(cmd *cobra.Command, args []string) error {
		var result Collection
		body := map[string]string{"name": args[0], "description": *description}
		if err := client.Post("/api/v1/collections", body, &result); err != nil {
			return err
		}

		out := NewOutput(cfg.Output)
		out.Print(result)
		return nil
	}
	collectionsCmd.AddCommand(createCmd)

	addPhotoCmd := &cobra.Command{
		Use:   "add-photo <collection-id> <photo-id>",
		Short: "Add a photo to a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"photo_id": args[1]}
			if err := client.Post("/api/v1/collections/"+args[0]+"/photos", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("photo added")
			return nil
		},
	}
	collectionsCmd.AddCommand(addPhotoCmd)

	shareCmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Create or regenerate the collection's share link",
		Args:  cobra.ExactArgs(1),
	}
	expiresDays := shareCmd.Flags().Int("expires-days", 0, "Days until the link expires (0 for no expiry)")
	shareCmd.RunE = func(cmd *cobra.Command, args []string) error {
		body := map[string]any{}
		if *expiresDays > 0 {
			body["expires_in_days"] = *expiresDays
		}

		var result ShareResult
		if err := client.Post("/api/v1/collections/"+args[0]+"/share", body, &result); err != nil {
			return err
		}

		out := NewOutput(cfg.Output)
		out.Print(result)
		return nil
	}
	collectionsCmd.AddCommand(shareCmd)

	collectionsCmd.AddCommand(&cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke the collection's share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/collections/" + args[0] + "/share"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("share link revoked")
			return nil
		},
	})

	return collectionsCmd
}
