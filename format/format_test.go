package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func testCandidates(t *testing.T) []*search.Candidate {
	t.Helper()
	n, err := model.NewNumber("42")
	if err != nil {
		t.Fatal(err)
	}
	width := model.Target{Name: "width", Expect: model.Number}
	return []*search.Candidate{
		{ID: 1, Expr: n, Score: 3, Parser: "number", Targets: []model.Target{width}},
		{ID: 2, Expr: model.NewReference(&model.Member{Name: "count", Type: model.Number}), Score: 1.5, Parser: "identifier"},
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(testCandidates(t)); err != nil {
		t.Fatal(err)
	}

	var got []Candidate
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	want := []Candidate{
		{ID: 1, Code: "42", Type: "number", Kind: "Number", Score: 3, Parser: "number", Targets: []string{"width"}},
		{ID: 2, Code: "count", Type: "number", Kind: "Reference", Score: 1.5, Parser: "identifier"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(testCandidates(t)); err != nil {
		t.Fatal(err)
	}
	want := "1\t42\tnumber\tNumber\t3.000\tnumber\twidth\n" +
		"2\tcount\tnumber\tReference\t1.500\tidentifier\t\n"
	if got := buf.String(); got != want {
		t.Errorf("line output = %q, want %q", got, want)
	}
}

func TestTextEncoder(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	text, err := (&TextEncoder{candidates: testCandidates(t)}).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(text), "\n"), "\n")
	want := []string{
		"  1 42     number 3.00 → width",
		"  2 count  number 1.50",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}

	text, _ = (&TextEncoder{}).MarshalText()
	if got := string(text); got != "no candidates\n" {
		t.Errorf("empty listing = %q, want %q", got, "no candidates\n")
	}
}

func TestTextEncoderAlignsWideCode(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	candidates := []*search.Candidate{
		{ID: 1, Expr: model.NewString("é", '\''), Score: 1, Parser: "string"},
		{ID: 2, Expr: model.NewString("日本", '"'), Score: 1, Parser: "string"},
		{ID: 3, Expr: model.NewReference(&model.Member{Name: "count", Type: model.Number}), Score: 1.5, Parser: "identifier"},
	}
	text, err := (&TextEncoder{candidates: candidates}).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(text), "\n"), "\n")
	want := []string{
		"  1 'é'     string 1.00",
		"  2 \"日本\"  string 1.00",
		"  3 count   number 1.50",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "text", "json", "line"} {
		if _, err := New(name, &bytes.Buffer{}); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("New(xml) succeeded, want error")
	}
}
