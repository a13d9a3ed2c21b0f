// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the date/time evaluator over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tcalc/app/lang"
)

const grammarURI = "tcalc://grammar"

// Server wraps the MCP server with the tcalc tools.
type Server struct {
	mcp    *server.MCPServer
	eval   *lang.Evaluator
	logger *slog.Logger
}

// New creates a new MCP server with all tools registered.
func New(eval *lang.Evaluator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{eval: eval, logger: logger}

	s.mcp = server.NewMCPServer(
		"tcalc",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("evaluate",
		mcp.WithDescription("Evaluate one date/time expression such as '2025/09/27 + 2d', "+
			"'2am - 30m' or 'tomorrow - 2025/01/01'. Read the grammar tool or the "+
			grammarURI+" resource for the full syntax."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The expression to evaluate")),
	), s.evaluate)

	s.mcp.AddTool(mcp.NewTool("evaluate_lines",
		mcp.WithDescription("Evaluate several independent expressions, one per line. "+
			"Blank lines and lines starting with // or ; are skipped."),
		mcp.WithString("lines", mcp.Required(), mcp.Description("Newline-separated expressions")),
	), s.evaluateLines)

	s.mcp.AddTool(mcp.NewTool("grammar",
		mcp.WithDescription("Returns the expression grammar, units and result types."),
	), s.grammar)

	s.mcp.AddResource(
		mcp.NewResource(grammarURI, "Expression Grammar",
			mcp.WithResourceDescription("Syntax and semantics of tcalc expressions."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGrammarResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) evaluate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.eval.Evaluate(expr)
	if err != nil {
		s.logger.Debug("evaluate rejected",
			slog.String("expression", expr),
			slog.String("stage", lang.Stage(err)),
			slog.String("error", err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) evaluateLines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("lines")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	results := lang.NewSheet(s.eval).EvalAll(lines, false)

	var b strings.Builder
	for i, res := range results {
		if lang.IsCommentOrBlank(lines[i]) {
			continue
		}
		if res.IsErr {
			fmt.Fprintf(&b, "%s => error: %s\n", lines[i], res.Text)
		} else {
			fmt.Fprintf(&b, "%s => %s\n", lines[i], res.Text)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) grammar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(GrammarGuide), nil
}

func (s *Server) readGrammarResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      grammarURI,
			MIMEType: "text/markdown",
			Text:     GrammarGuide,
		},
	}, nil
}
