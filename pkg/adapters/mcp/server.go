package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/techseo"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LLMSTextURI names the llms.txt resource.
const LLMSTextURI = "techseo://llms.txt"

// PostArgs selects a post.
type PostArgs struct {
	PostID int64 `json:"post_id"`
}

// CrossPostArgs selects a post and a platform.
type CrossPostArgs struct {
	PostID   int64  `json:"post_id"`
	Platform string `json:"platform"`
}

// SchemaResponse is the result of extract_schema.
type SchemaResponse struct {
	PostID  int64  `json:"post_id" jsonschema_description:"The post the schema was extracted from"`
	Found   bool   `json:"found" jsonschema_description:"False when the post is disabled or has neither code nor steps"`
	JSONLD  string `json:"json_ld,omitempty" jsonschema_description:"TechArticle JSON-LD document"`
	Samples int    `json:"code_samples" jsonschema_description:"Number of SoftwareSourceCode entries"`
	Steps   int    `json:"steps" jsonschema_description:"Number of HowToStep entries"`
}

// CrossPostResponse is the result of crosspost.
type CrossPostResponse struct {
	PostID   int64  `json:"post_id"`
	Platform string `json:"platform"`
	Content  string `json:"content" jsonschema_description:"Text ready to paste on the platform"`
}

// ValidateResponse is the result of validate_post.
type ValidateResponse struct {
	PostID  int64 `json:"post_id"`
	Enabled bool  `json:"enabled" jsonschema_description:"The per-post TechArticle opt-in"`
	Valid   bool  `json:"valid" jsonschema_description:"Opted in and carries both code and steps"`
}

// Server wraps the techseo Engine and exposes it as an MCP Server.
type Server struct {
	engine    *techseo.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *techseo.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("techseo-mcp", strings.TrimSpace(techseo.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("extract_schema",
		mcp.WithDescription("Extract the TechArticle JSON-LD of a post. Disabled posts and posts without code or steps yield found=false."),
		mcp.WithNumber("post_id", mcp.Required(), mcp.Description("Post ID")),
		mcp.WithOutputSchema[SchemaResponse](),
	), mcp.NewStructuredToolHandler(s.handleExtractSchema))

	s.mcpServer.AddTool(mcp.NewTool("crosspost",
		mcp.WithDescription("Render a post for a syndication platform."),
		mcp.WithNumber("post_id", mcp.Required(), mcp.Description("Post ID")),
		mcp.WithString("platform", mcp.Required(),
			mcp.Description("Target platform"),
			mcp.Enum("devto", "medium", "linkedin", "x", "bsky"),
		),
		mcp.WithOutputSchema[CrossPostResponse](),
	), mcp.NewStructuredToolHandler(s.handleCrossPost))

	s.mcpServer.AddTool(mcp.NewTool("validate_post",
		mcp.WithDescription("Report whether a post qualifies for TechArticle output."),
		mcp.WithNumber("post_id", mcp.Required(), mcp.Description("Post ID")),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) post(ctx context.Context, id int64) (*domain.Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("post_id must be a positive integer, got %d", id)
	}
	post, err := s.engine.Post(ctx, id)
	if errors.Is(err, domain.ErrPostNotFound) {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	return post, err
}

func (s *Server) handleExtractSchema(ctx context.Context, request mcp.CallToolRequest, args PostArgs) (SchemaResponse, error) {
	post, err := s.post(ctx, args.PostID)
	if err != nil {
		return SchemaResponse{}, err
	}

	resp := SchemaResponse{PostID: post.ID}
	article, ok := s.engine.Schema(ctx, post)
	if !ok {
		return resp, nil
	}
	body, err := schema.Marshal(article)
	if err != nil {
		return SchemaResponse{}, fmt.Errorf("encode TechArticle: %w", err)
	}
	resp.Found = true
	resp.JSONLD = string(body)
	resp.Samples = len(article.SoftwareCode)
	resp.Steps = len(article.Steps())
	return resp, nil
}

func (s *Server) handleCrossPost(ctx context.Context, request mcp.CallToolRequest, args CrossPostArgs) (CrossPostResponse, error) {
	post, err := s.post(ctx, args.PostID)
	if err != nil {
		return CrossPostResponse{}, err
	}
	content, err := s.engine.CrossPost(ctx, args.Platform, post)
	if err != nil {
		slog.Warn("MCP crosspost rejected", "post_id", post.ID, "platform", args.Platform, "error", err)
		return CrossPostResponse{}, err
	}
	return CrossPostResponse{
		PostID:   post.ID,
		Platform: strings.ToLower(strings.TrimSpace(args.Platform)),
		Content:  content,
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args PostArgs) (ValidateResponse, error) {
	post, err := s.post(ctx, args.PostID)
	if err != nil {
		return ValidateResponse{}, err
	}
	return ValidateResponse{
		PostID:  post.ID,
		Enabled: post.Enabled,
		Valid:   s.engine.IsPostValid(post),
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(LLMSTextURI, "llms.txt index",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.engine.LLMSText(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build llms.txt: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LLMSTextURI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	})
}
