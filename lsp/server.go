// Package lsp serves palette candidates as completions over the Language
// Server Protocol.
package lsp

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/palette/model"
	"github.com/dhamidi/palette/search"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "palette"

// delimiters end the statement before the search text. Parentheses and
// commas are left to the call grammar so that arguments can be completed.
const delimiters = ";={}"

var log = commonlog.GetLogger("palette.lsp")

type document struct {
	lines   []string
	session *search.Session
}

type Server struct {
	registry *search.Registry
	env      search.Environment
	options  []search.Option
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu   sync.Mutex
	docs map[string]*document
}

func NewServer(version string, registry *search.Registry, env search.Environment, opts ...search.Option) *Server {
	ls := &Server{
		registry: registry,
		env:      env,
		options:  opts,
		version:  version,
		docs:     make(map[string]*document),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", "(", ","},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.docs, params.TextDocument.URI)
	return nil
}

func (ls *Server) update(uri, text string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	doc, ok := ls.docs[uri]
	if !ok {
		doc = &document{session: search.NewSession(ls.registry, ls.env, ls.options...)}
		ls.docs[uri] = doc
	}
	doc.lines = strings.Split(text, "\n")
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	doc, ok := ls.docs[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}
	line := int(params.Position.Line)
	if line >= len(doc.lines) {
		return nil, nil
	}

	prefix := doc.lines[line][:byteOffset(doc.lines[line], int(params.Position.Character))]
	query, start := searchText(prefix)
	candidates := doc.session.Update(query)
	log.Debugf("completion %s:%d %q: %d candidates", params.TextDocument.URI, line, query, len(candidates))

	replace := protocol.Range{
		Start: protocol.Position{Line: params.Position.Line, Character: protocol.UInteger(utf16Len(prefix[:start]))},
		End:   params.Position,
	}
	items := make([]protocol.CompletionItem, 0, len(candidates))
	for i, c := range candidates {
		items = append(items, completionItem(c, i, query, replace))
	}
	return protocol.CompletionList{IsIncomplete: true, Items: items}, nil
}

func completionItem(c *search.Candidate, rank int, query string, replace protocol.Range) protocol.CompletionItem {
	kind := toProtocolKind(c.Expr.Kind())
	code := c.Code()
	detail := c.TypeName()
	sortText := fmt.Sprintf("%04d", rank)
	return protocol.CompletionItem{
		Label:      code,
		Kind:       &kind,
		Detail:     &detail,
		SortText:   &sortText,
		FilterText: &query,
		TextEdit:   protocol.TextEdit{Range: replace, NewText: code},
	}
}

// searchText returns the part of a line prefix that is being typed, and the
// byte offset it starts at.
func searchText(prefix string) (string, int) {
	start := strings.LastIndexAny(prefix, delimiters) + 1
	for start < len(prefix) && (prefix[start] == ' ' || prefix[start] == '\t') {
		start++
	}
	return prefix[start:], start
}

func toProtocolKind(kind model.ExprKind) protocol.CompletionItemKind {
	switch kind {
	case model.KindNumber, model.KindString:
		return protocol.CompletionItemKindValue
	case model.KindReference:
		return protocol.CompletionItemKindVariable
	case model.KindAccess:
		return protocol.CompletionItemKindField
	case model.KindCall:
		return protocol.CompletionItemKindFunction
	case model.KindConstruction:
		return protocol.CompletionItemKindConstructor
	default:
		return protocol.CompletionItemKindText
	}
}

// byteOffset converts a UTF-16 column into a byte offset within line.
func byteOffset(line string, character int) int {
	units := 0
	for i, r := range line {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		n += utf16.RuneLen(r)
		s = s[size:]
	}
	return n
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
