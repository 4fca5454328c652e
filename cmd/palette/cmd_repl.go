package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/palette/format"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const historyFile = ".palette_history"

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Search interactively, one line at a time",
		Long: `Each line replaces the search text. A line that extends the previous
one resumes the live parses instead of starting over.

Commands: :reset clears the session, :targets lists the insertion targets,
:quit exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			session := a.session(a.env.Search())
			encoder := format.NewTextEncoder(os.Stdout)

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			home, _ := os.UserHomeDir()
			histPath := filepath.Join(home, historyFile)
			if f, err := os.Open(histPath); err == nil {
				ln.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(histPath); err == nil {
					ln.WriteHistory(f)
					f.Close()
				}
			}()

			for {
				line, err := ln.Prompt("palette> ")
				if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
					fmt.Println()
					return nil
				}
				if err != nil {
					return fmt.Errorf("read line: %w", err)
				}

				switch strings.TrimSpace(line) {
				case ":quit":
					return nil
				case ":reset":
					session.Reset()
					continue
				case ":targets":
					for _, t := range a.env.Targets {
						fmt.Printf("%s\t%v\n", t.Name, t.Expect)
					}
					continue
				}

				if err := encoder.Encode(session.Update(line)); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				if line != "" {
					ln.AppendHistory(line)
				}
			}
		},
	}
}
