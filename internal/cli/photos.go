package cli

import (
	"github.com/spf13/cobra"
)

// Photo is a photo as returned by the API
type Photo struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	UploadedAt   string `json:"uploaded_at"`
	ImageURL     string `json:"image_url"`
	Uploader     *struct {
		Name string `json:"name"`
	} `json:"uploader"`
}

func newPhotosCmd() *cobra.Command {
	photosCmd := &cobra.Command{
		Use:   "photos",
		Short: "Browse and manage photos",
	}

	photosCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Photo
			if err := client.Get("/api/v1/photos", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	photosCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Photo
			if err := client.Get("/api/v1/photos/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	photosCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/photos/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("photo deleted")
			return nil
		},
	})

	return photosCmd
}
