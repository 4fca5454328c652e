package main

import (
	"github.com/dhamidi/palette/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, a.registry, a.env.Search(), a.cfg.SessionOptions()...)
			return server.RunStdio()
		},
	}
}
