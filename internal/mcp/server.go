package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/a3tai/mcp-pdf-toolkit/internal/config"
	"github.com/a3tai/mcp-pdf-toolkit/internal/delivery"
	"github.com/a3tai/mcp-pdf-toolkit/internal/descriptions"
	"github.com/a3tai/mcp-pdf-toolkit/internal/metrics"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	sink       delivery.Sink
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, sink delivery.Sink) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		sink:       sink,
		mcpServer:  mcpServer,
	}
	s.registerTools()

	return s, nil
}

func pathParam() mcp.ToolOption {
	return mcp.WithString("path",
		mcp.Required(),
		mcp.Description("PDF file, relative to the input directory or absolute inside it"),
	)
}

func outputNameParam(def string) mcp.ToolOption {
	return mcp.WithString("output_name",
		mcp.Description("Output file name, default "+def+"; .pdf is appended when missing"),
	)
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	tool := func(name string, opts ...mcp.ToolOption) mcp.Tool {
		opts = append([]mcp.ToolOption{mcp.WithDescription(descriptions.GetToolDescription(name))}, opts...)
		return mcp.NewTool(name, opts...)
	}

	s.mcpServer.AddTool(tool(descriptions.ToolGenerateEmpty,
		mcp.WithNumber("pages",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Number of pages, 1-%d", s.config.MaxGeneratedPages)),
		),
		outputNameParam(pdf.DefaultEmptyName),
	), s.handleGenerateEmpty)

	s.mcpServer.AddTool(tool(descriptions.ToolConvertFiles,
		mcp.WithString("paths",
			mcp.Required(),
			mcp.Description("Comma-separated list of png, jpg, jpeg, txt, docx or pptx files"),
		),
	), s.handleConvertFiles)

	s.mcpServer.AddTool(tool(descriptions.ToolExtractPages,
		pathParam(),
		mcp.WithString("pages",
			mcp.Required(),
			mcp.Description("Comma-separated 1-based page numbers, e.g. 1,3,5"),
		),
		outputNameParam(pdf.DefaultExtractedName),
	), s.handleExtractPages)

	s.mcpServer.AddTool(tool(descriptions.ToolMergeFiles,
		mcp.WithString("paths",
			mcp.Required(),
			mcp.Description("Comma-separated list of at least two PDF files, merged in this order"),
		),
		outputNameParam(pdf.DefaultMergedName),
	), s.handleMergeFiles)

	s.mcpServer.AddTool(tool(descriptions.ToolSplitFile, pathParam()), s.handleSplitFile)

	s.mcpServer.AddTool(tool(descriptions.ToolCompressFile,
		pathParam(),
		outputNameParam(pdf.DefaultCompressedName),
	), s.handleCompressFile)

	s.mcpServer.AddTool(tool(descriptions.ToolNumberPages,
		pathParam(),
		outputNameParam(pdf.DefaultNumberedName),
	), s.handleNumberPages)

	s.mcpServer.AddTool(tool(descriptions.ToolReorderPages,
		pathParam(),
		mcp.WithString("order",
			mcp.Required(),
			mcp.Description("Comma-separated 1-based page numbers in the new order, e.g. 3,1,2"),
		),
		outputNameParam(pdf.DefaultReorderedName),
	), s.handleReorderPages)

	s.mcpServer.AddTool(tool(descriptions.ToolInspectFile, pathParam()), s.handleInspectFile)

	s.mcpServer.AddTool(tool(descriptions.ToolServerInfo), s.handleServerInfo)
}

// Handler functions
func (s *Server) handleGenerateEmpty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := intArgument(request, "pages")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.execute(ctx, pdf.Request{
		Operation:  pdf.OpGenerate,
		Pages:      pages,
		OutputName: stringArgument(request, "output_name"),
	}, nil)
}

func (s *Server) handleConvertFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, err := request.RequireString("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.execute(ctx, pdf.Request{Operation: pdf.OpConvert}, pdf.SplitPaths(paths))
}

func (s *Server) handleExtractPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handlePageSelection(ctx, request, pdf.OpExtract, "pages")
}

func (s *Server) handleReorderPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handlePageSelection(ctx, request, pdf.OpReorder, "order")
}

func (s *Server) handlePageSelection(ctx context.Context, request mcp.CallToolRequest,
	op pdf.Operation, listParam string,
) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := request.RequireString(listParam)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.execute(ctx, pdf.Request{
		Operation:  op,
		PageList:   list,
		OutputName: stringArgument(request, "output_name"),
	}, []string{path})
}

func (s *Server) handleMergeFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, err := request.RequireString("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.execute(ctx, pdf.Request{
		Operation:  pdf.OpMerge,
		OutputName: stringArgument(request, "output_name"),
	}, pdf.SplitPaths(paths))
}

func (s *Server) handleSplitFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleSingleFile(ctx, request, pdf.OpSplit)
}

func (s *Server) handleCompressFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleSingleFile(ctx, request, pdf.OpCompress)
}

func (s *Server) handleNumberPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleSingleFile(ctx, request, pdf.OpNumberPages)
}

func (s *Server) handleSingleFile(ctx context.Context, request mcp.CallToolRequest, op pdf.Operation) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.execute(ctx, pdf.Request{
		Operation:  op,
		OutputName: stringArgument(request, "output_name"),
	}, []string{path})
}

func (s *Server) handleInspectFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	result, err := s.pdfService.Inspect(path)
	if err != nil {
		s.observeFailure(pdf.OpInspect, uuid.NewString(), start, err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	metrics.ObserveOperation(string(pdf.OpInspect), metrics.ResultSuccess, time.Since(start))

	return mcp.NewToolResultText(formatInspectResult(result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.pdfService.ServerInfo(ctx, s.config.ServerName, s.config.Version, s.sink.Describe())
	return mcp.NewToolResultText(formatServerInfoResult(result)), nil
}

// execute loads inputs, runs the operation and delivers its artifacts.
// Nothing is delivered when the operation fails.
func (s *Server) execute(ctx context.Context, req pdf.Request, paths []string) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()
	start := time.Now()
	logger := log.With().Str("request_id", requestID).Str("op", string(req.Operation)).Logger()

	if req.Operation == pdf.OpConvert {
		files, failures, err := s.pdfService.LoadConvertInputs(paths)
		if err != nil {
			s.observeFailure(req.Operation, requestID, start, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		req.Files, req.Failures = files, failures
	} else if paths != nil {
		files, err := s.pdfService.LoadInputs(req.Operation, paths)
		if err != nil {
			s.observeFailure(req.Operation, requestID, start, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		req.Files = files
	}

	bundle, err := s.pdfService.Execute(req)
	if err != nil {
		s.observeFailure(req.Operation, requestID, start, err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	locations, err := s.sink.Deliver(ctx, requestID, bundle)
	if err != nil {
		logger.Error().Err(err).Int("delivered", len(locations)).Msg("delivery failed")
		metrics.ObserveOperation(string(req.Operation), "delivery", time.Since(start))
		return mcp.NewToolResultError(fmt.Sprintf("failed to deliver results: %v", err)), nil
	}

	result := metrics.ResultSuccess
	if len(bundle.Failures) > 0 {
		result = metrics.ResultPartial
	}
	metrics.ObserveOperation(string(req.Operation), result, time.Since(start))
	metrics.AddOutput(string(req.Operation), bundle.TotalPages(), bundle.TotalBytes())

	logger.Info().
		Str("result", result).
		Int("artifacts", len(bundle.Artifacts)).
		Int("failures", len(bundle.Failures)).
		Int("pages", bundle.TotalPages()).
		Dur("duration", time.Since(start)).
		Msg("operation completed")

	if len(bundle.Artifacts) == 0 {
		return mcp.NewToolResultError(formatBundle(bundle, locations)), nil
	}
	return mcp.NewToolResultText(formatBundle(bundle, locations)), nil
}

func (s *Server) observeFailure(op pdf.Operation, requestID string, start time.Time, err error) {
	kind := pdferrors.KindOf(err)
	event := log.Warn()
	if !pdferrors.IsUserError(err) {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", requestID).
		Str("op", string(op)).
		Str("kind", kind.String()).
		Dur("duration", time.Since(start)).
		Msg("operation failed")
	metrics.ObserveOperation(string(op), kind.String(), time.Since(start))
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves the protocol on stdin/stdout until ctx is done
func (s *Server) runStdioMode(ctx context.Context) error {
	log.Info().
		Str("input_dir", s.config.InputDirectory).
		Str("output", s.sink.Describe()).
		Msg("starting PDF toolkit in stdio mode")

	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves the protocol over SSE, next to /metrics
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           httpHandler(sse),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("input_dir", s.config.InputDirectory).
			Str("output", s.sink.Describe()).
			Msg("starting PDF toolkit in server mode")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("sse shutdown")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// httpHandler routes /metrics to Prometheus and everything else to the
// SSE transport
func httpHandler(sse http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", sse)
	return mux
}
