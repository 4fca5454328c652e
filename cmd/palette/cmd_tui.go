package main

import (
	"fmt"

	"github.com/dhamidi/palette/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			chosen, err := tui.Run(a.session(a.env.Search()))
			if err != nil {
				return err
			}
			if chosen != nil {
				fmt.Fprintln(cmd.OutOrStdout(), chosen.Code())
			}
			return nil
		},
	}
}
