package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/palette/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
classes:
  - name: Shape
    members:
      - name: area
        function:
          returns: number
  - name: Square
    super: Shape
    members:
      - name: side
        type: number
scopes:
  - members:
      - name: name
        type: string
      - name: Square
        constructor:
          params:
            - {name: side, type: number}
          autocompletions:
            - args: [2.5]
              score: 2
      - name: greet
        function:
          params:
            - {name: who, type: string}
            - {name: loud, type: boolean, optional: true}
          returns: string
          autocompletions:
            - args: [world]
  - members:
      - name: name
        type: number
      - name: shape
        type: Square
targets:
  - {name: size, offset: 4, length: 2, expect: number}
expect: number
`

func TestParse(t *testing.T) {
	e, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, e.Scopes, 2)
	assert.Equal(t, model.Scope(e.Scopes[0]), e.Scopes[1].Parent())
	assert.Equal(t, model.Type(model.Number), e.Expect)
	require.Len(t, e.Targets, 1)
	assert.Equal(t, model.Target{Name: "size", Offset: 4, Length: 2, Expect: model.Number}, e.Targets[0])

	square := e.Scopes[0].Lookup("Square")
	require.NotNil(t, square)
	assert.True(t, square.Type.IsConstructor())
	sig := square.Type.Signature()
	assert.Equal(t, model.Type(e.Classes["Square"]), sig.Returns)
	require.Len(t, sig.Autocompletions, 1)
	assert.Equal(t, "2.5", sig.Autocompletions[0].Args[0].String())

	greet := e.Scopes[0].Lookup("greet")
	require.NotNil(t, greet)
	assert.Equal(t, 1, greet.Type.Signature().Required())
	assert.Equal(t, `"world"`, greet.Type.Signature().Autocompletions[0].Args[0].String())
}

func TestParseInheritance(t *testing.T) {
	e, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	square := e.Classes["Square"]
	assert.Same(t, e.Classes["Shape"], square.Super)

	var names []string
	for _, s := range model.Chain(square.Members()) {
		for _, m := range s.MembersByPrefix("") {
			names = append(names, m.Name)
		}
	}
	assert.Equal(t, []string{"side", "area"}, names)
}

func TestMembersShadowing(t *testing.T) {
	e, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var name *model.Member
	for _, m := range e.Members() {
		if m.Name == "name" {
			require.Nil(t, name, "name listed twice")
			name = m
		}
	}
	require.NotNil(t, name)
	assert.Equal(t, model.Type(model.Number), name.Type)

	se := e.Search()
	require.Len(t, se.Scopes, 1)
	assert.Equal(t, model.Scope(e.Scopes[1]), se.Scopes[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		unknown bool
	}{
		{"unknown member type", "scopes:\n  - members:\n      - {name: x, type: Widget}\n", true},
		{"unknown super", "classes:\n  - {name: A, super: B}\n", true},
		{"unknown expect", "expect: Widget\n", true},
		{"inheritance cycle", "classes:\n  - {name: A, super: B}\n  - {name: B, super: A}\n", false},
		{"missing name", "scopes:\n  - members:\n      - {type: number}\n", false},
		{"unknown field", "scope: []\n", false},
		{"non-scalar argument", "scopes:\n  - members:\n      - name: f\n        function:\n          autocompletions:\n            - args: [[1]]\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.unknown {
				assert.ErrorIs(t, err, ErrUnknownType)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	e, err := Default()
	require.NoError(t, err)

	var names []string
	for _, m := range e.Members() {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Math")
	assert.Contains(t, names, "title")
	assert.NotEmpty(t, e.Targets)
	assert.NotNil(t, e.Classes["Point3"].Super)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	e, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, e.Scopes, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEmptyDocument(t *testing.T) {
	e, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, e.Scopes)
	assert.Empty(t, e.Search().Scopes)
}

func TestType(t *testing.T) {
	e, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	typ, err := e.Type("number")
	require.NoError(t, err)
	assert.Equal(t, model.Type(model.Number), typ)

	typ, err = e.Type("Square")
	require.NoError(t, err)
	assert.Equal(t, model.Type(e.Classes["Square"]), typ)

	_, err = e.Type("Widget")
	assert.ErrorIs(t, err, ErrUnknownType)
}
