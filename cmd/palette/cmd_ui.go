package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dhamidi/palette/ui"
	"github.com/spf13/cobra"
)

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			server, err := ui.NewServer(a.registry, a.env.Search(), a.cfg.UI.Assets, a.cfg.SessionOptions()...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			addr := a.cfg.UI.Addr
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	cmd.Flags().String("assets", "", "serve static/ and templates/ from this directory before the embedded copies")

	return cmd
}
