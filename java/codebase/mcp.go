package codebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dhamidi/javasym/format"
	"github.com/dhamidi/javasym/java"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tliron/commonlog"
)

var mcpLog = commonlog.GetLogger("javasym.mcp")

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// MCPServer exposes entity lookups on the files of a Codebase as MCP
// tools. Every tool takes the path of a .java file, relative to the
// codebase root or absolute.
type MCPServer struct {
	codebase *Codebase
	mcp      *server.MCPServer
}

func NewMCPServer(c *Codebase, version string) *MCPServer {
	s := &MCPServer{
		codebase: c,
		mcp: server.NewMCPServer(
			lsName,
			version,
			server.WithToolCapabilities(true),
		),
	}

	pathArg := mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path of the .java file, relative to the project root"))
	entityArg := mcp.WithString("entity",
		mcp.Required(),
		mcp.Description("Entity name within the file (Outer.Inner) or package-qualified"))

	s.mcp.AddTool(mcp.NewTool(
		"list_entities",
		mcp.WithDescription("List the package, imports and all type declarations of a Java source file, with their members."),
		pathArg,
		mcp.WithReadOnlyHintAnnotation(true),
	), s.listEntities)

	s.mcp.AddTool(mcp.NewTool(
		"find_entity",
		mcp.WithDescription("Look up one class, interface or enum declared in a Java source file."),
		pathArg,
		entityArg,
		mcp.WithReadOnlyHintAnnotation(true),
	), s.findEntity)

	s.mcp.AddTool(mcp.NewTool(
		"members_of",
		mcp.WithDescription("List the fields, methods and constructors of an entity in declaration order."),
		pathArg,
		entityArg,
		mcp.WithString("kind",
			mcp.Description("Only return members of this kind: 'field', 'method' or 'constructor'")),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.membersOf)

	s.mcp.AddTool(mcp.NewTool(
		"is_subtype_of",
		mcp.WithDescription("Check whether an entity extends or implements a candidate, directly or transitively, within one file. Answers 'true', 'false' or 'unresolved' when the hierarchy leaves the file."),
		pathArg,
		entityArg,
		mcp.WithString("candidate",
			mcp.Required(),
			mcp.Description("Name of the candidate supertype")),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.isSubtypeOf)

	return s
}

func (s *MCPServer) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

type entityResponse struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Declaration   string   `json:"declaration"`
	Outer         string   `json:"outer,omitempty"`
	Line          int      `json:"line"`
	Supertypes    []string `json:"supertypes,omitempty"`
	Subtypes      []string `json:"subtypes,omitempty"`
	EnumConstants []string `json:"enum_constants,omitempty"`
	Members       []string `json:"members"`
	Doc           string   `json:"doc,omitempty"`
}

type memberResponse struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Declaration string `json:"declaration"`
	Static      bool   `json:"static"`
	Line        int    `json:"line"`
}

type subtypeResponse struct {
	Entity    string `json:"entity"`
	Candidate string `json:"candidate"`
	Result    string `json:"result"`
}

func (s *MCPServer) listEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, doc, errResult := s.document(request)
	if errResult != nil {
		return errResult, nil
	}

	var buf bytes.Buffer
	if err := format.NewJSONEncoder(&buf).Encode(doc.Model()); err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *MCPServer) findEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, doc, errResult := s.document(request)
	if errResult != nil {
		return errResult, nil
	}
	name, errResult := requiredString(args, "entity")
	if errResult != nil {
		return errResult, nil
	}

	e, ok := doc.Query.FindEntity(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", java.ErrUnknownEntity, name)), nil
	}

	response := entityResponse{
		Name:          e.Name,
		Kind:          string(e.Kind),
		Declaration:   format.EntityHeader(e),
		Outer:         e.Outer,
		Line:          e.Pos.Line,
		Supertypes:    doc.Query.Supertypes(e.Name),
		Subtypes:      doc.Query.Subtypes(e.Name),
		EnumConstants: e.EnumConstants,
		Members:       make([]string, 0, len(e.Members)),
		Doc:           format.DocSummary(e.Doc),
	}
	for _, mem := range e.Members {
		response.Members = append(response.Members, format.MemberLine(mem))
	}
	return marshalToolResponse(response)
}

func (s *MCPServer) membersOf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, doc, errResult := s.document(request)
	if errResult != nil {
		return errResult, nil
	}
	name, errResult := requiredString(args, "entity")
	if errResult != nil {
		return errResult, nil
	}

	var kinds []java.MemberKind
	if kind, _ := args["kind"].(string); kind != "" {
		switch k := java.MemberKind(kind); k {
		case java.MemberField, java.MemberMethod, java.MemberConstructor:
			kinds = append(kinds, k)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid kind: %s (must be one of: field, method, constructor)", kind)), nil
		}
	}

	members, err := doc.Query.MembersOf(name, kinds...)
	if errors.Is(err, java.ErrUnknownEntity) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	response := make([]memberResponse, 0, len(members))
	for _, mem := range members {
		response = append(response, memberResponse{
			Name:        mem.Name,
			Kind:        string(mem.Kind),
			Declaration: format.MemberLine(mem),
			Static:      mem.IsStatic,
			Line:        mem.Pos.Line,
		})
	}
	return marshalToolResponse(response)
}

func (s *MCPServer) isSubtypeOf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, doc, errResult := s.document(request)
	if errResult != nil {
		return errResult, nil
	}
	entity, errResult := requiredString(args, "entity")
	if errResult != nil {
		return errResult, nil
	}
	candidate, errResult := requiredString(args, "candidate")
	if errResult != nil {
		return errResult, nil
	}

	return marshalToolResponse(subtypeResponse{
		Entity:    entity,
		Candidate: candidate,
		Result:    doc.Query.IsSubtypeOf(entity, candidate).String(),
	})
}

// document loads the file named by the path argument. Extraction errors
// are reported as tool errors.
func (s *MCPServer) document(request mcp.CallToolRequest) (map[string]any, *Document, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, nil, mcp.NewToolResultError("invalid arguments format")
	}
	path, errResult := requiredString(args, "path")
	if errResult != nil {
		return nil, nil, errResult
	}

	doc, err := s.codebase.Load(path)
	if err != nil {
		mcpLog.Warningf("failed to load %s: %s", path, err)
		return nil, nil, mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %s", path, err))
	}
	if doc.Err != nil {
		return nil, nil, mcp.NewToolResultError(doc.Err.Error())
	}
	return args, doc, nil
}

func requiredString(args map[string]any, name string) (string, *mcp.CallToolResult) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", mcp.NewToolResultError(name + " parameter is required")
	}
	return value, nil
}

func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
