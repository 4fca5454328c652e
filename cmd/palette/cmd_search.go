package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/palette/format"
	"github.com/dhamidi/palette/search"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var outputFormat string
	var expect string
	var incremental bool
	var debug bool

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Rank the candidates for a piece of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			se := a.env.Search()
			if expect != "" {
				if se.Expect, err = a.env.Type(expect); err != nil {
					return fmt.Errorf("expect: %w", err)
				}
			}

			text := args[0]
			session := a.session(se)
			if incremental {
				for i := range text {
					session.Update(text[:i])
				}
			}
			candidates := session.Update(text)

			if debug {
				pretty.Fprintf(os.Stderr, "%# v\n", generation(session))
			}

			if err := encoder.Encode(candidates); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, line)")
	cmd.Flags().StringVarP(&expect, "expect", "e", "", "only offer values of this type")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "feed the text one character at a time")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the live parses to stderr")

	return cmd
}

type pendingDump struct {
	Parser      string
	Start, End  int
	Score       float64
	MayContinue bool
	Code        string
}

// generation projects the live parses onto plain values, since parser
// state may refer back into the environment.
func generation(s *search.Session) []pendingDump {
	var out []pendingDump
	for _, p := range s.Generation() {
		d := pendingDump{
			Parser:      p.Parser.Name(),
			Start:       p.InputStart,
			End:         p.InputEnd,
			Score:       p.Score,
			MayContinue: p.MayContinue,
		}
		if p.Expression != nil {
			d.Code = p.Expression.String()
		}
		out = append(out, d)
	}
	return out
}
