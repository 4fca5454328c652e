package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the members and targets of the loaded environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			name := color.New(color.Bold).SprintFunc()
			muted := color.New(color.Faint).SprintFunc()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, m := range a.env.Members() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", name(m.Name), m.Type, muted(m.Doc))
			}
			if len(a.env.Targets) > 0 {
				fmt.Fprintln(w)
				for _, t := range a.env.Targets {
					expect := "any"
					if t.Expect != nil {
						expect = t.Expect.String()
					}
					fmt.Fprintf(w, "%s\t%s\t[%d,%d)\n", name(t.Name), expect, t.Offset, t.Offset+t.Length)
				}
			}
			return w.Flush()
		},
	}
}
