package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/javasym/format"
	"github.com/dhamidi/javasym/java"
	"github.com/dhamidi/javasym/java/javadoc"
	"github.com/dhamidi/javasym/java/parser"
	"github.com/tliron/commonlog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "javasym"

var lspLog = commonlog.GetLogger("javasym.lsp")

// LSPServer serves document symbols and hovers for open .java documents.
type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(c *Codebase, version string) *LSPServer {
	ls := &LSPServer{
		codebase: c,
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	lspLog.Infof("initialized, root %s", ls.codebase.RootDir())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		ls.codebase.RemoveFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(params.TextDocument.URI, []byte(*params.Text))
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if _, err := ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("failed to read %s: %s", path, err)
	}
	return nil
}

func (ls *LSPServer) update(uri string, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		lspLog.Warningf("invalid document URI %s: %s", uri, err)
		return
	}
	doc := ls.codebase.UpdateFile(path, content)
	if doc.Err != nil {
		lspLog.Debugf("%s: %s", path, doc.Err)
	}
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.codebase.GetFile(path)
	if doc == nil || doc.Query == nil {
		return nil, nil
	}
	return DocumentSymbols(doc.Model()), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.codebase.GetFile(path)
	if doc == nil || doc.Query == nil {
		return nil, nil
	}

	pos := parser.Position{
		Line:   int(params.Position.Line) + 1,
		Column: int(params.Position.Character) + 1,
	}
	sym, ok := doc.Query.SymbolAt(pos)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(sym),
		},
	}, nil
}

func hoverText(sym java.Symbol) string {
	code, raw := format.EntityHeader(sym.Entity), sym.Entity.Doc
	if sym.Member != nil {
		code, raw = format.MemberLine(*sym.Member), sym.Member.Doc
	}
	doc := javadoc.Parse(raw)

	var sb strings.Builder
	sb.WriteString("```java\n" + code + "\n```")
	if doc.Deprecated() {
		sb.WriteString("\n\n**Deprecated**")
	}
	if doc.Description != "" {
		sb.WriteString("\n\n" + doc.Description)
	}

	var params []string
	if sym.Member != nil {
		for _, p := range sym.Member.Parameters {
			if text, ok := doc.Param(p.Name); ok {
				params = append(params, "- `"+p.Name+"` "+text)
			}
		}
	}
	if len(params) > 0 {
		sb.WriteString("\n\n" + strings.Join(params, "\n"))
	}
	if ret, ok := doc.Lookup("return"); ok && ret.Text != "" {
		sb.WriteString("\n\nReturns " + ret.Text)
	}
	return sb.String()
}

// DocumentSymbols returns the entities of m as a tree: nested entities are
// children of their enclosing entity, after its members.
func DocumentSymbols(m *java.Model) []protocol.DocumentSymbol {
	entities := m.Entities()
	children := make(map[string][]java.Entity)
	var roots []java.Entity
	for _, e := range entities {
		if e.Outer == "" {
			roots = append(roots, e)
			continue
		}
		children[e.Outer] = append(children[e.Outer], e)
	}

	var build func(e java.Entity) protocol.DocumentSymbol
	build = func(e java.Entity) protocol.DocumentSymbol {
		detail := format.EntityHeader(e)
		sym := protocol.DocumentSymbol{
			Name:           e.SimpleName,
			Detail:         &detail,
			Kind:           entitySymbolKind(e.Kind),
			Range:          toRange(e.Span),
			SelectionRange: nameRange(e.Pos, e.SimpleName),
		}
		for _, constant := range e.EnumConstants {
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           constant,
				Kind:           protocol.SymbolKindEnumMember,
				Range:          toRange(e.Span),
				SelectionRange: toRange(e.Span),
			})
		}
		for _, mem := range e.Members {
			memberDetail := format.MemberLine(mem)
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           mem.Name,
				Detail:         &memberDetail,
				Kind:           memberSymbolKind(mem.Kind),
				Range:          toRange(mem.Span),
				SelectionRange: nameRange(mem.Pos, mem.Name),
			})
		}
		for _, child := range children[e.Name] {
			sym.Children = append(sym.Children, build(child))
		}
		return sym
	}

	symbols := make([]protocol.DocumentSymbol, 0, len(roots))
	for _, e := range roots {
		symbols = append(symbols, build(e))
	}
	return symbols
}

func entitySymbolKind(kind java.EntityKind) protocol.SymbolKind {
	switch kind {
	case java.EntityInterface:
		return protocol.SymbolKindInterface
	case java.EntityEnum:
		return protocol.SymbolKindEnum
	default:
		return protocol.SymbolKindClass
	}
}

func memberSymbolKind(kind java.MemberKind) protocol.SymbolKind {
	switch kind {
	case java.MemberField:
		return protocol.SymbolKindField
	case java.MemberConstructor:
		return protocol.SymbolKindConstructor
	default:
		return protocol.SymbolKindMethod
	}
}

func toPosition(pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(pos.Line-1, 0)),
		Character: protocol.UInteger(max(pos.Column-1, 0)),
	}
}

func toRange(span parser.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}

func nameRange(pos parser.Position, name string) protocol.Range {
	end := pos
	end.Column += len(name)
	return protocol.Range{Start: toPosition(pos), End: toPosition(end)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
