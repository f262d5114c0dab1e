package cmd

import (
	"encoding/json"
	"io"

	"catalog-admin/config"
	"catalog-admin/imagekit"

	"github.com/spf13/cobra"
)

func newSignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign",
		Short: "Print a freshly minted ImageKit upload credential as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCredentials(cmd.OutOrStdout(),
				imagekit.NewSigner(config.GetEnv("IMAGEKIT_PUBLIC_KEY", ""), config.GetEnv("IMAGEKIT_PRIVATE_KEY", "")))
		},
	}
}

func printCredentials(w io.Writer, signer *imagekit.Signer) error {
	creds, err := signer.Mint()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(creds)
}
