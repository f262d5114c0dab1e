// Package cmd holds the catalog-admin command line.
package cmd

import (
	"log"
	"os"

	"catalog-admin/config"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const envFileFlag = "env-file"

var rootFlags = map[string]cobraflags.Flag{
	envFileFlag: &cobraflags.StringFlag{
		Name:  envFileFlag,
		Value: "",
		Usage: "Path to a .env file (defaults to ./.env when present)",
	},
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog-admin",
		Short: "Catalog back office API and ImageKit credential service",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnv(rootFlags[envFileFlag].GetString())
		},
		SilenceUsage: true,
	}

	// Running the binary with no subcommand starts the server.
	root.RunE = serveCommand
	cobraflags.RegisterMap(root, rootFlags)
	cobraflags.RegisterMap(root, serveFlags)

	for _, sub := range []*cobra.Command{newServeCommand(), newMigrateCommand(), newSignCommand()} {
		cobraflags.RegisterMap(sub, rootFlags)
		root.AddCommand(sub)
	}

	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
