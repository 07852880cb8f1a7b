package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	galleryremote "github.com/anitschke/go-galleryremote"
)

func newCreateAlbumCmd(opts *rootOptions) *cobra.Command {
	var parentName, title, summary string
	cmd := &cobra.Command{
		Use:   "create-album <name>",
		Short: "Create an album, optionally nested under an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if title == "" {
				title = name
			}

			s, err := newSession(opts)
			if err != nil {
				return err
			}
			defer s.client.Close()

			if err := s.login(); err != nil {
				return err
			}

			var parent *galleryremote.Album
			if parentName != "" {
				tree, _, err := s.getAlbums()
				if err != nil {
					return err
				}
				parent = tree.AlbumByName(parentName)
				if parent == nil {
					return fmt.Errorf("no album named %q on the gallery", parentName)
				}
				if !parent.CanAddSubAlbum {
					return fmt.Errorf("no permission to create albums under %q", parentName)
				}
			}

			created, err := s.createAlbum(name, title, summary, parent)
			if err != nil {
				return err
			}
			// The server may have renamed the album for uniqueness.
			fmt.Fprintf(cmd.OutOrStdout(), "created album %q\n", created)
			return nil
		},
	}
	cmd.Flags().StringVar(&parentName, "parent", "", "machine name of the parent album (top level if unset)")
	cmd.Flags().StringVar(&title, "title", "", "display title (defaults to the name)")
	cmd.Flags().StringVar(&summary, "summary", "", "album summary")
	return cmd
}
