package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/palette/search"
	"github.com/fatih/color"
)

var (
	rankStyle   = color.New(color.FgBlue)
	codeStyle   = color.New(color.Bold)
	typeStyle   = color.New(color.FgCyan)
	scoreStyle  = color.New(color.FgYellow)
	targetStyle = color.New(color.FgGreen)
	emptyStyle  = color.New(color.Faint)
)

// TextEncoder renders candidates as an aligned, colored listing. Colors are
// dropped when the output is not a terminal or NO_COLOR is set.
type TextEncoder struct {
	w          io.Writer
	candidates []*search.Candidate
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(candidates []*search.Candidate) error {
	e.candidates = candidates
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if len(e.candidates) == 0 {
		sb.WriteString(emptyStyle.Sprint("no candidates") + "\n")
		return []byte(sb.String()), nil
	}

	width := 0
	for _, c := range e.candidates {
		width = max(width, lipgloss.Width(c.Code()))
	}
	for i, c := range e.candidates {
		code := c.Code()
		sb.WriteString(rankStyle.Sprintf("%3d ", i+1))
		sb.WriteString(codeStyle.Sprint(code))
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(code)+2))
		if t := c.TypeName(); t != "" {
			sb.WriteString(typeStyle.Sprint(t) + " ")
		}
		sb.WriteString(scoreStyle.Sprintf("%.2f", c.Score))
		if names := targetNames(c); len(names) > 0 {
			sb.WriteString(" " + targetStyle.Sprintf("→ %s", strings.Join(names, ", ")))
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}
