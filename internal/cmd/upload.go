package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	galleryremote "github.com/anitschke/go-galleryremote"
)

func newUploadCmd(opts *rootOptions) *cobra.Command {
	var caption, description string
	cmd := &cobra.Command{
		Use:   "upload <album> <file>...",
		Short: "Upload photos or videos into an album",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumName := args[0]
			files := args[1:]

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			defer s.client.Close()

			if err := s.login(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, file := range files {
				item, err := itemFromFile(file, caption, description)
				if err != nil {
					return err
				}
				item.Progress = func(sent, total int64) {
					fmt.Fprintf(out, "\r%s: %d/%d bytes", item.Filename, sent, total)
				}

				status, err := s.client.AddItem(cmd.Context(), albumName, item)
				fmt.Fprintln(out)
				if err != nil {
					return err
				}
				if !status.OK() {
					return statusError(fmt.Sprintf("upload of %q", item.Filename), status)
				}
				fmt.Fprintf(out, "uploaded %s to %s\n", item.Filename, albumName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "caption for the uploaded items")
	cmd.Flags().StringVar(&description, "description", "", "description for the uploaded items")
	return cmd
}

func itemFromFile(path, caption, description string) (*galleryremote.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &galleryremote.Item{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
		Caption:     caption,
		Description: description,
	}, nil
}
