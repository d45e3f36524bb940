package cli

import (
	"github.com/spf13/cobra"
)

// SharedCollection is the public view behind a share token
type SharedCollection struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name"`
	PhotoCount  int    `json:"photo_count"`
	Photos      []struct {
		ID           string `json:"id"`
		OriginalName string `json:"original_name"`
		ImageURL     string `json:"image_url"`
	} `json:"photos"`
}

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <token>",
		Short: "Resolve a public share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SharedCollection
			if err := client.Get("/api/v1/share/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
