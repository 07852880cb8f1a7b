package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	galleryremote "github.com/anitschke/go-galleryremote"
)

func newAlbumsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List the gallery's album tree with permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts)
			if err != nil {
				return err
			}
			defer s.client.Close()

			if err := s.login(); err != nil {
				return err
			}
			tree, dropped, err := s.getAlbums()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, root := range tree.Roots() {
				printAlbum(out, root)
			}
			for _, rec := range dropped {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: album %q dropped, parent %q not in listing\n", rec.Name, rec.Parent)
			}
			return nil
		},
	}
}

func printAlbum(out io.Writer, album *galleryremote.Album) {
	perms := ""
	if album.CanAddItem {
		perms += "+items"
	}
	if album.CanAddSubAlbum {
		if perms != "" {
			perms += ","
		}
		perms += "+albums"
	}
	if perms != "" {
		perms = " [" + perms + "]"
	}
	fmt.Fprintf(out, "%s%s (%s)%s\n", strings.Repeat("  ", album.Depth()), album.Title, album.Name, perms)
	for _, child := range album.Children() {
		printAlbum(out, child)
	}
}
