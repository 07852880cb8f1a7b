package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the gallery",
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
			fmt.Fprintf(cmd.OutOrStdout(), "logged in to %s as %s (protocol %d.%d, %s encoding)\n",
				s.client.Identifier(), s.client.Username(),
				s.client.MajorVersion(), s.client.MinorVersion(), s.client.SniffedEncoding())

			if save && !opts.noKeyring {
				password, err := resolvePassword(opts)
				if err != nil {
					return err
				}
				if err := savePassword(opts, password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "password saved to the system keyring")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save-password", false, "store the password in the system keyring after a successful login")
	return cmd
}
