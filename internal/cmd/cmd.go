// Package cmd implements the galleryremote command line interface, a small
// front end over the client library for poking at a gallery from a terminal.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the CLI with the given arguments.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

type rootOptions struct {
	url         string
	username    string
	password    string
	galleryType string
	verbose     bool
	noKeyring   bool
}

func (o *rootOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.url, "url", "", "base URL of the gallery, e.g. http://example.com/gallery/")
	flags.StringVarP(&o.username, "username", "u", "", "gallery username")
	flags.StringVarP(&o.password, "password", "p", "", "gallery password (falls back to $GALLERY_PASSWORD, then the system keyring)")
	flags.StringVarP(&o.galleryType, "type", "t", "g1", "protocol variant: g1, g2, or g2-xmlrpc")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&o.noKeyring, "no-keyring", false, "never touch the system keyring")
}

func (o *rootOptions) logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "galleryremote",
		Short:         "Talk to a Gallery server over its remote-upload protocol",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newLoginCmd(opts),
		newAlbumsCmd(opts),
		newCreateAlbumCmd(opts),
		newUploadCmd(opts),
	)
	return cmd
}
