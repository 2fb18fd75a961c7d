package pdf

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/a3tai/mcp-pdf-toolkit/internal/descriptions"
)

func TestServerInfo(t *testing.T) {
	service, dir := newTestService(t)
	writeFile(t, dir, "report.pdf", []byte("%PDF-1.4"))
	writeFile(t, dir, "scans/page.PNG", []byte("png"))
	writeFile(t, dir, "ignored.gif", []byte("gif"))
	writeFile(t, dir, ".hidden/secret.pdf", []byte("%PDF-1.4"))

	result := service.ServerInfo(context.Background(), "test-pdf-server", "1.0.0-test", "/tmp/out")

	if result.ServerName != "test-pdf-server" {
		t.Errorf("Expected server name test-pdf-server, got %s", result.ServerName)
	}
	if result.Version != "1.0.0-test" {
		t.Errorf("Expected version 1.0.0-test, got %s", result.Version)
	}
	if result.OutputLocation != "/tmp/out" {
		t.Errorf("Expected output location /tmp/out, got %s", result.OutputLocation)
	}
	if result.MaxGeneratedPages != 20 {
		t.Errorf("Expected max generated pages 20, got %d", result.MaxGeneratedPages)
	}

	expectedTools := descriptions.GetAllToolNames()
	if len(result.AvailableTools) != len(expectedTools) {
		t.Fatalf("Expected %d tools, got %d", len(expectedTools), len(result.AvailableTools))
	}
	toolNames := make(map[string]bool)
	for _, tool := range result.AvailableTools {
		toolNames[tool.Name] = true
		if tool.Description == "" || tool.Usage == "" || tool.Parameters == "" {
			t.Errorf("Tool %s has incomplete information", tool.Name)
		}
	}
	for _, name := range expectedTools {
		if !toolNames[name] {
			t.Errorf("Expected tool %s not found", name)
		}
	}

	paths := make(map[string]bool)
	for _, f := range result.InputFiles {
		paths[f.Path] = true
	}
	if len(result.InputFiles) != 2 {
		t.Errorf("Expected 2 input files, got %d: %v", len(result.InputFiles), paths)
	}
	if !paths["report.pdf"] || !paths[filepath.Join("scans", "page.PNG")] {
		t.Errorf("Unexpected input listing: %v", paths)
	}
	if result.InputsTruncated {
		t.Error("Listing should not be truncated")
	}

	if !strings.Contains(result.UsageGuidance, "pdf_server_info") {
		t.Error("Usage guidance should mention pdf_server_info")
	}
}

func TestInputScanner_Limits(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d/e/f/g/deep.pdf"} {
		writeFile(t, dir, name, []byte("x"))
	}

	files, truncated, err := NewInputScanner(3, 2, time.Second).Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 2 || !truncated {
		t.Errorf("Expected 2 files and truncation, got %d truncated=%v", len(files), truncated)
	}

	files, truncated, err = NewInputScanner(3, 100, time.Second).Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 3 || truncated {
		t.Errorf("Expected the 3 shallow files only, got %d truncated=%v", len(files), truncated)
	}
}
