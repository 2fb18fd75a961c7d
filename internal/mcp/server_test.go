package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-pdf-toolkit/internal/config"
	"github.com/a3tai/mcp-pdf-toolkit/internal/delivery"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
)

type testEnv struct {
	server *Server
	inDir  string
	outDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	inDir := t.TempDir()
	outDir := filepath.Join(inDir, "output")

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeStdio
	cfg.InputDirectory = inDir
	cfg.OutputDirectory = outDir
	cfg.ServerName = "test-server"
	cfg.Version = "1.0.0"

	service, err := pdf.NewService(cfg.MaxFileSize, cfg.MaxGeneratedPages, inDir)
	require.NoError(t, err)
	sink, err := delivery.NewDirectorySink(outDir)
	require.NoError(t, err)

	server, err := NewServer(cfg, service, sink)
	require.NoError(t, err)
	return &testEnv{server: server, inDir: inDir, outDir: outDir}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
		return ""
	}
}

// generate writes a labelled document into the output directory and
// returns its path relative to the input directory
func (e *testEnv) generate(t *testing.T, pages int, name string) string {
	t.Helper()
	result, err := e.server.handleGenerateEmpty(context.Background(), callRequest("pdf_generate_empty",
		map[string]interface{}{"pages": float64(pages), "output_name": name}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	return filepath.Join("output", name+".pdf")
}

func pagesOf(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	src, err := pdf.OpenSource(filepath.Base(path), data)
	require.NoError(t, err)
	return src.PageCount()
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	service, err := pdf.NewService(cfg.MaxFileSize, cfg.MaxGeneratedPages, t.TempDir())
	require.NoError(t, err)
	sink, err := delivery.NewDirectorySink(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     *config.Config
		service *pdf.Service
		sink    delivery.Sink
		wantErr string
	}{
		{name: "valid", cfg: cfg, service: service, sink: sink},
		{name: "nil config", service: service, sink: sink, wantErr: "config cannot be nil"},
		{name: "nil service", cfg: cfg, sink: sink, wantErr: "pdfService cannot be nil"},
		{name: "nil sink", cfg: cfg, service: service, wantErr: "sink cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Server
			var err error
			if tt.sink == nil {
				s, err = NewServer(tt.cfg, tt.service, nil)
			} else {
				s, err = NewServer(tt.cfg, tt.service, tt.sink)
			}
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s.mcpServer)
		})
	}
}

func TestHandleGenerateEmpty(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.server.handleGenerateEmpty(context.Background(),
		callRequest("pdf_generate_empty", map[string]interface{}{"pages": float64(3)}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Empty_PDF.pdf")
	assert.Equal(t, 3, pagesOf(t, filepath.Join(env.outDir, "Empty_PDF.pdf")))

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "missing pages", args: map[string]interface{}{}},
		{name: "zero", args: map[string]interface{}{"pages": float64(0)}},
		{name: "too many", args: map[string]interface{}{"pages": float64(1000)}},
		{name: "fraction", args: map[string]interface{}{"pages": 2.5}},
		{name: "not a number", args: map[string]interface{}{"pages": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.server.handleGenerateEmpty(context.Background(), callRequest("pdf_generate_empty", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}

func TestHandleSplitAndMerge(t *testing.T) {
	env := newTestEnv(t)
	doc := env.generate(t, 5, "source")

	result, err := env.server.handleSplitFile(context.Background(),
		callRequest("pdf_split_file", map[string]interface{}{"path": doc}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 2, pagesOf(t, filepath.Join(env.outDir, pdf.SplitFirstName)))
	assert.Equal(t, 3, pagesOf(t, filepath.Join(env.outDir, pdf.SplitSecondName)))

	result, err = env.server.handleMergeFiles(context.Background(), callRequest("pdf_merge_files",
		map[string]interface{}{"paths": "output/Part2.pdf, output/Part1.pdf", "output_name": "joined"}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 5, pagesOf(t, filepath.Join(env.outDir, "joined.pdf")))

	result, err = env.server.handleMergeFiles(context.Background(), callRequest("pdf_merge_files",
		map[string]interface{}{"paths": doc}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "at least 2")
}

func TestHandlePageSelection(t *testing.T) {
	env := newTestEnv(t)
	doc := env.generate(t, 4, "four")

	result, err := env.server.handleExtractPages(context.Background(), callRequest("pdf_extract_pages",
		map[string]interface{}{"path": doc, "pages": "1,3"}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 2, pagesOf(t, filepath.Join(env.outDir, "Extracted_PDF.pdf")))

	result, err = env.server.handleReorderPages(context.Background(), callRequest("pdf_reorder_pages",
		map[string]interface{}{"path": doc, "order": "4,3,2,1,1"}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 5, pagesOf(t, filepath.Join(env.outDir, "Reordered_PDF.pdf")))

	// Out of range pages produce no output
	result, err = env.server.handleExtractPages(context.Background(), callRequest("pdf_extract_pages",
		map[string]interface{}{"path": doc, "pages": "9", "output_name": "never"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "out of range")
	assert.NoFileExists(t, filepath.Join(env.outDir, "never.pdf"))

	result, err = env.server.handleReorderPages(context.Background(), callRequest("pdf_reorder_pages",
		map[string]interface{}{"path": doc}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCompressAndNumber(t *testing.T) {
	env := newTestEnv(t)
	doc := env.generate(t, 2, "base")

	result, err := env.server.handleCompressFile(context.Background(), callRequest("pdf_compress_file",
		map[string]interface{}{"path": doc}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 2, pagesOf(t, filepath.Join(env.outDir, "Compressed_PDF.pdf")))

	result, err = env.server.handleNumberPages(context.Background(), callRequest("pdf_number_pages",
		map[string]interface{}{"path": doc}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, 2, pagesOf(t, filepath.Join(env.outDir, "Numbered_PDF.pdf")))
}

func TestHandleConvertFiles(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.inDir, "notes.txt"), []byte("hello\nworld"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.inDir, "fake.png"), []byte("not an image"), 0o644))

	result, err := env.server.handleConvertFiles(context.Background(), callRequest("pdf_convert_files",
		map[string]interface{}{"paths": "notes.txt,fake.png"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "notes.pdf")
	assert.Contains(t, text, "fake.png")
	assert.FileExists(t, filepath.Join(env.outDir, "notes.pdf"))
	assert.NoFileExists(t, filepath.Join(env.outDir, "fake.pdf"))

	// Every file failing is reported as an error
	result, err = env.server.handleConvertFiles(context.Background(), callRequest("pdf_convert_files",
		map[string]interface{}{"paths": "fake.png"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleConvertFiles_LoadFailuresIsolated(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.inDir, "good.txt"), []byte("kept"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.inDir, "empty.txt"), nil, 0o644))

	result, err := env.server.handleConvertFiles(context.Background(), callRequest("pdf_convert_files",
		map[string]interface{}{"paths": "good.txt,empty.txt,missing.txt"}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	text := resultText(t, result)
	assert.Contains(t, text, "missing.txt")
	assert.Contains(t, text, "does not exist")
	assert.Equal(t, 1, pagesOf(t, filepath.Join(env.outDir, "good.pdf")))
	assert.Equal(t, 1, pagesOf(t, filepath.Join(env.outDir, "empty.pdf")))

	// Only unloadable inputs is still an error result
	result, err = env.server.handleConvertFiles(context.Background(), callRequest("pdf_convert_files",
		map[string]interface{}{"paths": "missing.txt,gone.txt"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "gone.txt")
}

func TestHandleInputErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		call    func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		wantMsg string
	}{
		{name: "missing path", call: env.server.handleSplitFile, args: map[string]interface{}{}, wantMsg: "path"},
		{name: "missing file", call: env.server.handleSplitFile, args: map[string]interface{}{"path": "nope.pdf"}, wantMsg: "does not exist"},
		{name: "path traversal", call: env.server.handleCompressFile, args: map[string]interface{}{"path": "../../etc/passwd.pdf"}, wantMsg: "security validation failed"},
		{name: "missing paths", call: env.server.handleConvertFiles, args: map[string]interface{}{}, wantMsg: "paths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.call(context.Background(), callRequest("tool", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.wantMsg)
		})
	}
}

func TestHandleInspectFile(t *testing.T) {
	env := newTestEnv(t)
	doc := env.generate(t, 2, "inspect")

	result, err := env.server.handleInspectFile(context.Background(), callRequest("pdf_inspect_file",
		map[string]interface{}{"path": doc}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Pages: 2")
	assert.Contains(t, text, "Page 1: 595 x 842 pt")
}

func TestHandleServerInfo(t *testing.T) {
	env := newTestEnv(t)
	env.generate(t, 1, "listed")

	result, err := env.server.handleServerInfo(context.Background(), callRequest("pdf_server_info", nil))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "test-server v1.0.0")
	assert.Contains(t, text, env.outDir)
	assert.Contains(t, text, filepath.Join("output", "listed.pdf"))
	for _, tool := range []string{"pdf_generate_empty", "pdf_merge_files", "pdf_reorder_pages"} {
		assert.True(t, strings.Contains(text, tool), tool)
	}
}

func TestIntArgument(t *testing.T) {
	tests := []struct {
		value   interface{}
		want    int
		wantErr bool
	}{
		{value: float64(4), want: 4},
		{value: 7, want: 7},
		{value: " 12 ", want: 12},
		{value: 1.5, wantErr: true},
		{value: "x", wantErr: true},
		{value: true, wantErr: true},
	}

	for _, tt := range tests {
		got, err := intArgument(callRequest("t", map[string]interface{}{"n": tt.value}), "n")
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
