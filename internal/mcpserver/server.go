// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Glosa tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/apperr"
	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/extract"
	"github.com/starford/glosa/internal/noteservice"
)

const guideURI = "glosa://analysis-guide"

// WordResolver resolves a single word.
type WordResolver interface {
	Resolve(ctx context.Context, word string) (*dictionary.Resolution, error)
}

// NoteAnalyzer runs the batch analysis of a note.
type NoteAnalyzer interface {
	AnalyzeNote(ctx context.Context, id int64, words []string) (*analyzer.Report, error)
}

// Server wraps the MCP server with Glosa tools.
type Server struct {
	mcp      *server.MCPServer
	notes    *noteservice.Service
	analyzer NoteAnalyzer
	resolver WordResolver
}

// New creates a new MCP server with all Glosa tools registered.
func New(notes *noteservice.Service, an NoteAnalyzer, resolver WordResolver) *Server {
	s := &Server{notes: notes, analyzer: an, resolver: resolver}

	s.mcp = server.NewMCPServer(
		"Glosa",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("lookup_word",
		mcp.WithDescription("Look up a Spanish word in the RAE dictionary (cached). "+
			"Falls back to the dictionary's spelling suggestion and an exact-match search."),
		mcp.WithString("word", mcp.Required(), mcp.Description("Word to look up")),
	), s.lookupWord)

	s.mcp.AddTool(mcp.NewTool("extract_words",
		mcp.WithDescription("List the candidate words Glosa would analyze in a text, in first-occurrence order."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Free text")),
	), s.extractWords)

	s.mcp.AddTool(mcp.NewTool("analyze_note",
		mcp.WithDescription("Resolve the words of a note and store the result on it. "+
			"Unresolvable words are skipped. See get_analysis_guide for the output shape."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("words", mcp.Description("Optional comma-separated words to analyze instead of the note content")),
	), s.analyzeNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes, oldest first, one per line as 'id<TAB>title'."),
		mcp.WithString("limit", mcp.Description("Page size (default 50)")),
		mcp.WithString("offset", mcp.Description("Page offset")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note with its analyzed words as JSON."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through note titles and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note from free text."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note text")),
		mcp.WithString("title", mcp.Description("Optional title")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("get_analysis_guide",
		mcp.WithDescription("Explains how words are picked and resolved and how analyzed words are shaped."),
	), s.getAnalysisGuide)

	s.mcp.AddResource(
		mcp.NewResource(guideURI, "Analysis Guide",
			mcp.WithResourceDescription("How Glosa extracts, resolves and stores words."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func requireID(req mcp.CallToolRequest) (int64, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id: %q", raw)
	}
	return id, nil
}

// optionalInt reads a numeric string argument, returning 0 when absent.
func optionalInt(req mcp.CallToolRequest, name string) (int, error) {
	raw, err := req.RequireString(name)
	if err != nil || strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}

func (s *Server) lookupWord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := req.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.resolver.Resolve(ctx, word)
	if err != nil {
		var nf *dictionary.NotFoundError
		if errors.As(err, &nf) && len(nf.Suggestions) > 0 {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s (did you mean: %s?)", nf.Word, strings.Join(nf.Suggestions, ", "))), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.Entry)
}

func (s *Server) extractWords(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	words := extract.Words(text)
	if len(words) == 0 {
		return mcp.NewToolResultText("no candidate words"), nil
	}
	return mcp.NewToolResultText(strings.Join(words, "\n")), nil
}

func (s *Server) analyzeNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var words []string
	if raw, wErr := req.RequireString("words"); wErr == nil {
		for _, w := range strings.Split(raw, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
	}
	rep, err := s.analyzer.AnalyzeNote(ctx, id, words)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("note not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rep)
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, err := optionalInt(req, "limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := optionalInt(req, "offset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, total, err := s.notes.ListNotes(ctx, limit, offset)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, n := range notes {
		title := "(untitled)"
		if n.Title != nil {
			title = *n.Title
		}
		fmt.Fprintf(&b, "%d\t%s\n", n.ID, title)
	}
	fmt.Fprintf(&b, "total: %d", total)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.notes.GetNote(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %d", id)), nil
	}
	return jsonResult(note)
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.notes.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var title *string
	if t, tErr := req.RequireString("title"); tErr == nil {
		title = &t
	}
	note, err := s.notes.CreateNote(ctx, noteservice.CreateInput{Title: title, Content: content})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %d", note.ID)), nil
}

func (s *Server) getAnalysisGuide(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(AnalysisGuide), nil
}

func (s *Server) readGuideResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      guideURI,
			MIMEType: "text/markdown",
			Text:     AnalysisGuide,
		},
	}, nil
}
